package sim

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/san-kum/fixedstep/internal/collision"
	"github.com/san-kum/fixedstep/internal/config"
	"github.com/san-kum/fixedstep/internal/dynamics"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/shape"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

// Session is a world built for one scalar representation, driven with
// float64 frame times. The representation is chosen once, in Open.
type Session interface {
	Scene() string
	Repr() scalar.Repr
	// Advance feeds one frame delta, clamped to the scene's max frame dt,
	// and returns the number of fixed sub-steps it ran.
	Advance(frameDt float64) int
	Timestep() float64
	Bodies() []BodyState
	// Elapsed is the simulated time covered by completed sub-steps.
	Elapsed() float64
	Accumulator() float64
	Alpha() float64
	Close() error
}

// Open builds the world described by cfg.
func Open(cfg *config.Config, opts ...Option) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	switch r := cfg.ReprValue(); r {
	case scalar.ReprF32:
		return open[scalar.F32](cfg, o.log)
	case scalar.ReprF64:
		return open[scalar.F64](cfg, o.log)
	case scalar.ReprQ16:
		return open[scalar.Q16](cfg, o.log)
	case scalar.ReprQ32:
		return open[scalar.Q32](cfg, o.log)
	default:
		return nil, fmt.Errorf("unsupported representation %v", r)
	}
}

type session[T scalar.Real[T]] struct {
	log     logr.Logger
	scene   string
	maxDt   float64
	world   *dynamics.World[T]
	ids     []dynamics.BodyID
	names   []string
	objects []*collision.Object[T]
	extents []Vec3
}

func open[T scalar.Real[T]](cfg *config.Config, log logr.Logger) (Session, error) {
	dcfg := dynamics.DefaultConfig[T]()
	dcfg.FixedTimestep = scalar.FromFloat[T](cfg.Timestep)
	dcfg.Gravity = vec3[T](cfg.Gravity)
	dcfg.Collision = cfg.Collision
	dcfg.BodyCapacity = cfg.BodyCapacity

	world, err := dynamics.New(dcfg, dynamics.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open %s as %v: %w", cfg.Name, scalar.ReprOf[T](), err)
	}

	s := &session[T]{
		log:   log.WithName("session").WithValues("scene", cfg.Name, "repr", scalar.ReprOf[T]()),
		scene: cfg.Name,
		maxDt: cfg.Frames.MaxDt,
		world: world,
	}
	for i, bc := range cfg.Bodies {
		if err := s.add(bc); err != nil {
			world.Close()
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
	}
	s.log.V(1).Info("session opened", "bodies", len(s.ids))
	return s, nil
}

func (s *session[T]) add(bc config.BodyConfig) error {
	b := dynamics.NewBody[T]()
	b.Position = vec3[T](bc.Position)
	b.LinVelocity = vec3[T](bc.Velocity)
	b.AngVelocity = vec3[T](bc.AngVelocity)
	b.Mass = scalar.FromFloat[T](bc.Mass)
	b.Kinematic = bc.Kinematic

	sh, err := buildShape[T](bc.Shape)
	if err != nil {
		return err
	}
	obj, err := collision.NewObject[T](sh)
	if err != nil {
		return err
	}
	ext, err := shape.Extents[T](sh)
	if err != nil {
		return err
	}
	obj.Position = b.Position
	if err := s.world.Collision().AddObject(obj); err != nil {
		return err
	}

	id := s.world.AddBody(b)
	if bc.Inactive {
		if err := s.world.RemoveBody(id); err != nil {
			return err
		}
	}

	name := bc.Name
	if name == "" {
		name = fmt.Sprintf("body%d", len(s.ids))
	}
	s.ids = append(s.ids, id)
	s.names = append(s.names, name)
	s.objects = append(s.objects, obj)
	s.extents = append(s.extents, Vec3(ext.MGL()))
	return nil
}

func buildShape[T scalar.Real[T]](sc config.ShapeConfig) (shape.Shape[T], error) {
	kind, err := config.ParseShapeKind(sc.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case shape.KindEllipsoid:
		return shape.NewEllipsoid(vec3[T](sc.Radii)), nil
	case shape.KindBox:
		return shape.NewBox(vec3[T](sc.Dimensions)), nil
	default:
		return shape.NewSphere(scalar.FromFloat[T](sc.Radius)), nil
	}
}

func vec3[T scalar.Real[T]](v config.Vec3) vecmath.Vec3[T] {
	return vecmath.V3(scalar.FromFloat[T](v[0]), scalar.FromFloat[T](v[1]), scalar.FromFloat[T](v[2]))
}

func (s *session[T]) Scene() string     { return s.scene }
func (s *session[T]) Repr() scalar.Repr { return scalar.ReprOf[T]() }

func (s *session[T]) Advance(frameDt float64) int {
	if s.maxDt > 0 && frameDt > s.maxDt {
		s.log.V(2).Info("frame clamped", "dt", frameDt, "max", s.maxDt)
		frameDt = s.maxDt
	}
	n := s.world.Step(scalar.FromFloat[T](frameDt))
	if n > 0 {
		s.sync(n)
	}
	return n
}

// sync moves kinematic bodies by their per-step velocity for the n sub-steps
// just run, then mirrors body positions onto their collision objects.
func (s *session[T]) sync(n int) {
	steps := scalar.FromInt[T](int32(n))
	for i, id := range s.ids {
		b, err := s.world.Body(id)
		if err != nil {
			continue
		}
		if b.Kinematic && s.world.Active(id) {
			b.Position = b.Position.Add(b.LinVelocity.Scale(steps))
			s.world.SetBody(id, b)
		}
		s.objects[i].Position = b.Position
	}
}

func (s *session[T]) Bodies() []BodyState {
	out := make([]BodyState, 0, len(s.ids))
	for i, id := range s.ids {
		b, err := s.world.Body(id)
		if err != nil {
			continue
		}
		out = append(out, BodyState{
			Name:      s.names[i],
			Position:  Vec3(b.Position.MGL()),
			Velocity:  Vec3(b.LinVelocity.MGL()),
			Mass:      b.Mass.Float64(),
			Shape:     s.objects[i].Shape.Kind().String(),
			Extents:   s.extents[i],
			Kinematic: b.Kinematic,
			Active:    s.world.Active(id),
		})
	}
	return out
}

func (s *session[T]) Timestep() float64    { return s.world.FixedTimestep().Float64() }
func (s *session[T]) Elapsed() float64     { return s.world.Time() }
func (s *session[T]) Accumulator() float64 { return s.world.Accumulator().Float64() }
func (s *session[T]) Alpha() float64       { return s.world.Alpha().Float64() }

func (s *session[T]) Close() error {
	s.log.V(1).Info("session closed", "steps", s.world.Steps())
	return s.world.Close()
}
