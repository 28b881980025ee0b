package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws the tree with plain ANSI escapes as a simulation observer,
// for terminals where the full screen program is unwanted.
type LiveRenderer struct {
	out       io.Writer
	sim       *sim.Simulator
	pacer     pacer.Pacer
	opts      Options
	frameRate int
	lastFrame time.Time
	tree      *viz.Canvas
	overlay   *viz.Canvas
	started   time.Time
}

func NewLiveRenderer(out io.Writer, s *sim.Simulator, p pacer.Pacer, opts Options, frameRate int) *LiveRenderer {
	b := s.Config().Bounds
	return &LiveRenderer{
		out:       out,
		sim:       s,
		pacer:     p,
		opts:      opts,
		frameRate: max(frameRate, 1),
		tree:      viz.NewCanvas(b.Cols, b.Rows),
		overlay:   viz.NewCanvas(b.Cols, b.Rows),
	}
}

func (r *LiveRenderer) OnTick(s sim.Snapshot) {
	r.tree.PaintAll(s.Events)
	if !s.Stepped || !r.pacer.Visible(s.Tick-1) {
		return
	}
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.overlay.Clear()
	r.sim.Overlay(func(e growth.Event) { r.overlay.Paint(e) })
	r.render()
}

func (r *LiveRenderer) frame() *viz.Canvas {
	c := r.tree.Composite(r.overlay)
	if r.opts.Message != "" && (r.opts.MessageTimeout <= 0 || time.Since(r.started) < r.opts.MessageTimeout) {
		viz.StampMessage(c, r.opts.Message, c.Height+viz.BaseHeight(r.opts.Base))
	}
	if r.opts.Verbose {
		for i, line := range statusLines(r.sim, r.pacer) {
			c.Text(2, 1+i, line)
		}
	}
	return c
}

func (r *LiveRenderer) render() {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(viz.Frame(r.frame(), r.opts.Base, r.opts.Theme))
	b.WriteString("\n")
	fmt.Fprint(r.out, b.String())
}

// Tree is the painted tree without overlay or decorations.
func (r *LiveRenderer) Tree() *viz.Canvas { return r.tree }

func (r *LiveRenderer) Start() {
	r.started = time.Now()
	fmt.Fprint(r.out, hideCursor)
}

// Stop draws the final frame and restores the cursor.
func (r *LiveRenderer) Stop() {
	r.overlay.Clear()
	r.render()
	fmt.Fprint(r.out, showCursor)
}
