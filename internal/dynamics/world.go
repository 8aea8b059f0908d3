package dynamics

import (
	"iter"

	"github.com/go-logr/logr"

	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

type World[T scalar.Real[T]] struct {
	log       logr.Logger
	collision CollisionWorld[T]

	timestep T
	acc      T
	gravity  vecmath.Vec3[T]
	steps    uint64

	slots  []slot[T]
	free   []uint32
	alive  int
	active int
	closed bool
}

// New builds a world from cfg. If the collision world fails to initialize its
// error is returned unchanged and no world is returned.
func New[T scalar.Real[T]](cfg Config[T], opts ...Option) (*World[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := settings{log: logr.Discard()}
	for _, opt := range opts {
		opt(&s)
	}

	factory := DefaultCollision[T]
	if s.collision != nil {
		f, ok := s.collision.(CollisionFactory[T])
		if !ok {
			return nil, result.Errorf(result.InvalidArgs, "dynamics: collision factory is %T, want %T", s.collision, factory)
		}
		factory = f
	}

	log := s.log.WithName("dynamics")
	cw, err := factory(cfg.Collision, s.log)
	if err != nil {
		log.Error(err, "collision world init failed")
		return nil, err
	}

	w := &World[T]{
		log:       log,
		collision: cw,
		timestep:  cfg.FixedTimestep,
		gravity:   cfg.Gravity,
		slots:     make([]slot[T], 0, cfg.BodyCapacity),
	}
	log.V(1).Info("world initialized",
		"repr", scalar.ReprOf[T](),
		"timestep", cfg.FixedTimestep.Float64(),
		"gravity", cfg.Gravity.MGL())
	return w, nil
}

// Close tears down the collision world and drops every body. Safe to call
// more than once.
func (w *World[T]) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.log.V(1).Info("world closed", "bodies", w.alive, "steps", w.steps)

	w.slots = nil
	w.free = nil
	w.alive, w.active = 0, 0
	return w.collision.Close()
}

// Collision returns the collision world the stepper owns.
func (w *World[T]) Collision() CollisionWorld[T] {
	return w.collision
}

func (w *World[T]) SetFixedTimestep(ts T) error {
	var zero T
	if ts <= zero {
		return result.Errorf(result.InvalidArgs, "dynamics: fixed timestep must be positive, got %v", ts.Float64())
	}
	w.timestep = ts
	return nil
}

func (w *World[T]) FixedTimestep() T { return w.timestep }

func (w *World[T]) SetGravity(g vecmath.Vec3[T]) { w.gravity = g }

func (w *World[T]) Gravity() vecmath.Vec3[T] { return w.gravity }

// Accumulator returns the time carried over to the next Step.
func (w *World[T]) Accumulator() T { return w.acc }

// Alpha is Accumulator / FixedTimestep in [0, 1), for interpolating render
// state between the last two sub-steps.
func (w *World[T]) Alpha() T { return w.acc.Div(w.timestep) }

// Steps returns the number of sub-steps run since New.
func (w *World[T]) Steps() uint64 { return w.steps }

// Time returns the simulated time, Steps * FixedTimestep.
func (w *World[T]) Time() float64 {
	return float64(w.steps) * w.timestep.Float64()
}

// Step advances the world by dt and returns the number of sub-steps run.
// Negative dt is ignored. Work is proportional to dt / FixedTimestep, so
// callers should clamp large frame deltas.
func (w *World[T]) Step(dt T) int {
	var zero T
	if dt > zero {
		w.acc = w.acc.Add(dt)
	}

	n := 0
	for w.acc >= w.timestep {
		w.stepFixed()
		w.acc = w.acc.Sub(w.timestep)
		n++
	}
	w.steps += uint64(n)

	if n > 0 {
		w.log.V(2).Info("step", "substeps", n, "accumulator", w.acc.Float64())
	}
	return n
}

func (w *World[T]) stepFixed() {
	gravityStep := w.gravity.Scale(w.timestep)

	for i := range w.slots {
		s := &w.slots[i]
		if !s.alive || !s.active {
			continue
		}
		b := &s.body
		if !b.Dynamic() {
			continue
		}
		b.LinVelocity = b.LinVelocity.Add(gravityStep)
		b.Position = b.Position.Add(b.LinVelocity)
	}
}

// CreateBody adds a body from NewBody and makes it active.
func (w *World[T]) CreateBody() BodyID {
	return w.AddBody(NewBody[T]())
}

// AddBody adds b and makes it active.
func (w *World[T]) AddBody(b Body[T]) BodyID {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot[T]{})
	}

	s := &w.slots[idx]
	s.gen++
	s.body = b
	s.alive = true
	s.active = true
	w.alive++
	w.active++
	return BodyID{index: idx, gen: s.gen}
}

func (w *World[T]) lookup(id BodyID) (*slot[T], error) {
	if id.IsZero() || int(id.index) >= len(w.slots) {
		return nil, result.Errorf(result.DoesNotExist, "dynamics: unknown %v", id)
	}
	s := &w.slots[id.index]
	if !s.alive || s.gen != id.gen {
		return nil, result.Errorf(result.DoesNotExist, "dynamics: stale %v", id)
	}
	return s, nil
}

// DeleteBody destroys the body. Its ID, and any copy of it, becomes stale.
func (w *World[T]) DeleteBody(id BodyID) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	if s.active {
		w.active--
	}
	s.body = Body[T]{}
	s.alive = false
	s.active = false
	w.alive--
	w.free = append(w.free, id.index)
	return nil
}

// InsertBody returns a removed body to the simulation.
func (w *World[T]) InsertBody(id BodyID) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	if !s.active {
		s.active = true
		w.active++
	}
	return nil
}

// RemoveBody takes the body out of the simulation without destroying it.
func (w *World[T]) RemoveBody(id BodyID) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	if s.active {
		s.active = false
		w.active--
	}
	return nil
}

func (w *World[T]) Body(id BodyID) (Body[T], error) {
	s, err := w.lookup(id)
	if err != nil {
		return Body[T]{}, err
	}
	return s.body, nil
}

func (w *World[T]) SetBody(id BodyID, b Body[T]) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	s.body = b
	return nil
}

// Active reports whether id refers to a body that takes part in stepping.
func (w *World[T]) Active(id BodyID) bool {
	s, err := w.lookup(id)
	return err == nil && s.active
}

// Len returns the number of existing bodies, active or not.
func (w *World[T]) Len() int { return w.alive }

func (w *World[T]) ActiveLen() int { return w.active }

// All yields every existing body in slot order.
func (w *World[T]) All() iter.Seq2[BodyID, Body[T]] {
	return func(yield func(BodyID, Body[T]) bool) {
		for i := range w.slots {
			s := &w.slots[i]
			if !s.alive {
				continue
			}
			if !yield(BodyID{index: uint32(i), gen: s.gen}, s.body) {
				return
			}
		}
	}
}
