package sim

import (
	"context"
	"fmt"
)

// Simulator drives a session through a sequence of frame deltas.
type Simulator struct {
	session   Session
	metrics   []Metric
	observers []Observer
}

func New(s Session) *Simulator {
	return &Simulator{
		session:   s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run feeds frames to the session, recording the world after each one. The
// context is checked between frames; on cancellation the frames recorded so
// far are returned with the context error.
func (s *Simulator) Run(ctx context.Context, frames []float64) (*Result, error) {
	if err := validateFrames(frames); err != nil {
		return nil, err
	}

	result := &Result{
		Scene:   s.session.Scene(),
		Repr:    s.session.Repr().String(),
		Initial: s.snapshot(-1, 0, 0),
		Frames:  make([]Frame, 0, len(frames)),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(result.Initial)
	}

	for i, dt := range frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		n := s.session.Advance(dt)
		result.Substeps += n

		f := s.snapshot(i, dt, n)
		result.Frames = append(result.Frames, f)

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) snapshot(i int, dt float64, n int) Frame {
	return Frame{
		Index:       i,
		Dt:          dt,
		Substeps:    n,
		Time:        s.session.Elapsed(),
		Accumulator: s.session.Accumulator(),
		Bodies:      s.session.Bodies(),
	}
}

func validateFrames(frames []float64) error {
	for i, dt := range frames {
		if dt < 0 {
			return fmt.Errorf("frame %d: dt must not be negative, got %f", i, dt)
		}
	}
	return nil
}
