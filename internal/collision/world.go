// Package collision holds the collision world: a registry of caller-owned
// objects. Detection and response are not implemented yet; the registry
// exists so the dynamics world can own the collaborator's lifecycle.
package collision

import (
	"iter"

	"github.com/go-logr/logr"

	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/shape"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

// Object is a shape placed in the world. The caller owns it; a World only
// keeps the pointer while it is registered.
type Object[T scalar.Real[T]] struct {
	Shape    shape.Shape[T]
	Position vecmath.Vec3[T]
	Rotation vecmath.Mat3[T]
}

// NewObject places s at the origin with identity rotation.
func NewObject[T scalar.Real[T]](s shape.Shape[T]) (*Object[T], error) {
	if s == nil {
		return nil, result.Errorf(result.InvalidArgs, "collision: nil shape")
	}
	return &Object[T]{
		Shape:    s,
		Rotation: vecmath.Identity3[T](),
	}, nil
}

type Config struct {
	// InitialCapacity sizes the registry. Negative values are rejected.
	InitialCapacity int `yaml:"initial_capacity" json:"initial_capacity"`
}

func DefaultConfig() Config {
	return Config{InitialCapacity: 16}
}

type Option func(*options)

type options struct {
	log logr.Logger
}

func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

type World[T scalar.Real[T]] struct {
	log     logr.Logger
	objects []*Object[T]
	index   map[*Object[T]]int
	closed  bool
}

func New[T scalar.Real[T]](cfg Config, opts ...Option) (*World[T], error) {
	if cfg.InitialCapacity < 0 {
		return nil, result.Errorf(result.InvalidArgs, "collision: negative initial capacity %d", cfg.InitialCapacity)
	}
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	w := &World[T]{
		log:     o.log.WithName("collision"),
		objects: make([]*Object[T], 0, cfg.InitialCapacity),
		index:   make(map[*Object[T]]int, cfg.InitialCapacity),
	}
	w.log.V(1).Info("world initialized", "capacity", cfg.InitialCapacity, "repr", scalar.ReprOf[T]())
	return w, nil
}

// Close unregisters every object. Objects themselves are left untouched.
func (w *World[T]) Close() error {
	if w.closed {
		return nil
	}
	w.log.V(1).Info("world closed", "objects", len(w.objects))
	w.objects = nil
	w.index = nil
	w.closed = true
	return nil
}

func (w *World[T]) AddObject(o *Object[T]) error {
	switch {
	case o == nil:
		return result.Errorf(result.InvalidArgs, "collision: nil object")
	case w.closed:
		return result.Errorf(result.InvalidOperation, "collision: world closed")
	}
	if _, ok := w.index[o]; ok {
		return result.Errorf(result.AlreadyExists, "collision: object already registered")
	}
	w.index[o] = len(w.objects)
	w.objects = append(w.objects, o)
	return nil
}

func (w *World[T]) RemoveObject(o *Object[T]) error {
	switch {
	case o == nil:
		return result.Errorf(result.InvalidArgs, "collision: nil object")
	case w.closed:
		return result.Errorf(result.InvalidOperation, "collision: world closed")
	}
	i, ok := w.index[o]
	if !ok {
		return result.Errorf(result.DoesNotExist, "collision: object not registered")
	}

	// Swap-remove; registration order is not preserved.
	last := len(w.objects) - 1
	if i != last {
		moved := w.objects[last]
		w.objects[i] = moved
		w.index[moved] = i
	}
	w.objects[last] = nil
	w.objects = w.objects[:last]
	delete(w.index, o)
	return nil
}

func (w *World[T]) Contains(o *Object[T]) bool {
	_, ok := w.index[o]
	return ok
}

func (w *World[T]) Len() int {
	return len(w.objects)
}

func (w *World[T]) Objects() iter.Seq[*Object[T]] {
	return func(yield func(*Object[T]) bool) {
		for _, o := range w.objects {
			if !yield(o) {
				return
			}
		}
	}
}

// Contact is a pair of overlapping objects.
type Contact[T scalar.Real[T]] struct {
	A, B   *Object[T]
	Normal vecmath.Vec3[T]
	Depth  T
}

// Contacts is reserved for narrow-phase detection.
func (w *World[T]) Contacts() ([]Contact[T], error) {
	return nil, result.Wrap(result.NotImplemented, "collision: contacts", result.ErrNotImplemented)
}
