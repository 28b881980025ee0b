package tui

import (
	"time"

	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

// Options configure one session of tree growth.
type Options struct {
	Sim   sim.Config
	Pacer pacer.Pacer

	Infinite       bool
	Wait           time.Duration
	Screensaver    bool
	Print          bool
	Verbose        bool
	Message        string
	MessageTimeout time.Duration
	Base           int
	Theme          viz.Theme

	// NewSeed picks the seed of every tree after the first in infinite mode.
	NewSeed func() int64
}

func (o Options) newSeed() int64 {
	if o.NewSeed != nil {
		return o.NewSeed()
	}
	return time.Now().UnixNano()
}

// treeBounds is the area left for the tree once the base is drawn.
func treeBounds(cols, rows, base int) (int, int) {
	return cols, rows - viz.BaseHeight(base)
}
