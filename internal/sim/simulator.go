package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/rng"
)

// Simulator visits the branches of one tree round-robin until none are left.
type Simulator struct {
	cfg       Config
	tree      *growth.Tree
	turn      int
	events    []growth.Event
	metrics   []Metric
	observers []Observer
}

func New(cfg Config) (*Simulator, error) {
	tree, err := growth.NewTree(cfg.Params, cfg.Bounds, rng.New(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", cfg.Seed, err)
	}
	return &Simulator{
		cfg:       cfg,
		tree:      tree,
		events:    make([]growth.Event, 0, 64),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Config() Config            { return s.cfg }
func (s *Simulator) Counters() growth.Counters { return s.tree.Counters() }
func (s *Simulator) Live() int                 { return s.tree.Registry().Len() }
func (s *Simulator) Done() bool                { return s.tree.Done() }

// Next removes exhausted branches until it can step one, then steps it. The
// returned events are only valid until the following call. ok is false once the
// tree has no branches left; the final retirements may still return events.
func (s *Simulator) Next() (events []growth.Event, ok bool) {
	s.events = s.events[:0]
	reg := s.tree.Registry()

	for reg.Len() > 0 {
		b := reg.At(s.turn)
		if b.Life <= 0 {
			s.tree.Retire(b, s.collect)
			reg.Remove(s.turn)
			if s.turn >= reg.Len() {
				s.turn = 0
			}
			continue
		}

		s.collect(s.tree.Step(b))
		s.turn = (s.turn + 1) % reg.Len()
		s.notify(true)
		return s.events, true
	}

	if len(s.events) > 0 {
		s.notify(false)
	}
	return s.events, false
}

// collect keeps only events the canvas can show.
func (s *Simulator) collect(e growth.Event) {
	if s.cfg.Bounds.Contains(e.X, e.Y) {
		s.events = append(s.events, e)
	}
}

func (s *Simulator) notify(stepped bool) {
	c := s.tree.Counters()
	snap := Snapshot{
		Tick:     c.Tick,
		Live:     s.tree.Registry().Len(),
		Stepped:  stepped,
		Counters: c,
		Events:   s.events,
	}
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, obs := range s.observers {
		obs.OnTick(snap)
	}
}

// Overlay emits the procedural leaf preview of the live branches. It is a no-op
// unless procedural leaves are enabled.
func (s *Simulator) Overlay(emit func(growth.Event)) {
	if !s.cfg.Params.Procedural {
		return
	}
	s.tree.Overlay(func(e growth.Event) {
		if s.cfg.Bounds.Contains(e.X, e.Y) {
			emit(e)
		}
	})
}

// Run drives the tree to completion. sink receives the events of every call to
// Next; gate, when set, is consulted after every step.
func (s *Simulator) Run(ctx context.Context, gate Gate, sink func([]growth.Event)) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
	}

	for {
		select {
		case <-ctx.Done():
			return s.Result(), &StopError{Tick: s.Counters().Tick, Wrapped: ctx.Err()}
		default:
		}

		events, ok := s.Next()
		if sink != nil && len(events) > 0 {
			sink(events)
		}
		if !ok {
			break
		}

		if gate != nil {
			if err := gate.Pause(ctx, s.Counters().Tick-1); err != nil {
				return s.Result(), &StopError{Tick: s.Counters().Tick, Wrapped: err}
			}
		}
	}

	return s.Result(), nil
}

func (s *Simulator) Result() *Result {
	c := s.tree.Counters()
	result := &Result{
		Seed:     s.cfg.Seed,
		Ticks:    c.Tick,
		Trunks:   c.Trunks,
		Shoots:   c.Shoots,
		Branches: c.Branches,
		Metrics:  make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result
}
