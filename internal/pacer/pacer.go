// Package pacer maps simulation ticks onto wall-clock time so a named tree
// keeps growing between runs.
package pacer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
)

// WaitSlice is the longest uninterrupted sleep inside Wait.
const WaitSlice = 200 * time.Millisecond

var ErrInvalidLifetime = errors.New("pacer: lifetime must be positive")

// Calibrate grows the configured tree without pacing and returns the number of
// ticks it takes to finish.
func Calibrate(ctx context.Context, cfg sim.Config) (uint64, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return 0, err
	}
	result, err := s.Run(ctx, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("calibration: %w", err)
	}
	return result.Ticks, nil
}

// Rate spreads lifetime seconds over ticks. A zero tick count counts as one.
func Rate(lifetime float64, ticks uint64) (float64, error) {
	if lifetime <= 0 || math.IsNaN(lifetime) {
		return 0, fmt.Errorf("%v: %w", lifetime, ErrInvalidLifetime)
	}
	return lifetime / float64(max(ticks, 1)), nil
}

// NewNamed calibrates cfg and returns a fresh record created at now.
func NewNamed(ctx context.Context, cfg sim.Config, lifetime float64, now time.Time) (storage.Record, error) {
	if lifetime <= 0 {
		return storage.Record{}, fmt.Errorf("%v: %w", lifetime, ErrInvalidLifetime)
	}
	ticks, err := Calibrate(ctx, cfg)
	if err != nil {
		return storage.Record{}, err
	}
	spt, err := Rate(lifetime, ticks)
	if err != nil {
		return storage.Record{}, err
	}
	return storage.Record{
		Seed:           cfg.Seed,
		Created:        now,
		SecondsPerTick: spt,
	}, nil
}

// TargetTick is the tick a tree created at created should have reached by now.
func TargetTick(created time.Time, spt float64, now time.Time) uint64 {
	if spt <= 0 {
		return 0
	}
	elapsed := now.Sub(created).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return uint64(math.Floor(elapsed / spt))
}

// Pacer gates the simulation loop. Ticks before Target run silently.
type Pacer struct {
	Live   bool
	Step   time.Duration
	Target uint64
}

// Resume builds the pacing plan for a loaded record. Named records catch up to
// wall-clock time and then tick every SecondsPerTick; simple records replay
// silently up to their saved tick.
func Resume(rec storage.Record, now time.Time) Pacer {
	if rec.Named() {
		return Pacer{
			Live:   true,
			Step:   seconds(rec.SecondsPerTick),
			Target: TargetTick(rec.Created, rec.SecondsPerTick, now),
		}
	}
	return Pacer{Target: rec.Ticks}
}

// Visible reports whether the step with zero-based index tick is shown live.
func (p Pacer) Visible(tick uint64) bool {
	return p.Live && tick >= p.Target
}

func (p Pacer) Pause(ctx context.Context, tick uint64) error {
	if !p.Visible(tick) {
		return nil
	}
	return Wait(ctx, p.Step)
}

// Wait sleeps for d in slices of at most WaitSlice, returning early with
// ctx.Err() when ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline := time.Now().Add(d)
	for {
		left := time.Until(deadline)
		if left <= 0 {
			return nil
		}
		timer := time.NewTimer(min(left, WaitSlice))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
