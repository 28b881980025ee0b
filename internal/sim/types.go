package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bonsai/internal/growth"
)

type Config struct {
	Params growth.Params
	Seed   int64
	Bounds growth.Bounds
}

func DefaultConfig() Config {
	return Config{
		Params: growth.DefaultParams(),
		Seed:   1,
		Bounds: growth.Bounds{Rows: 24, Cols: 80},
	}
}

// Snapshot is what observers and metrics see after each call to Next.
type Snapshot struct {
	Tick     uint64
	Live     int
	Stepped  bool
	Counters growth.Counters
	Events   []growth.Event
}

type Observer interface {
	OnTick(s Snapshot)
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Gate decides how long the loop waits after the step with zero-based index tick.
type Gate interface {
	Pause(ctx context.Context, tick uint64) error
}

type Result struct {
	Seed     int64
	Ticks    uint64
	Trunks   int
	Shoots   int
	Branches int
	Metrics  map[string]float64
}

// StopError reports a run that ended before the tree finished.
type StopError struct {
	Tick    uint64
	Wrapped error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("stopped at tick %d: %v", e.Tick, e.Wrapped)
}

func (e *StopError) Unwrap() error {
	return e.Wrapped
}
