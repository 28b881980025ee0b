package metrics

import (
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/sim"
)

// PeakBranches is the largest number of live branches seen at once.
type PeakBranches struct {
	name string
	peak int
}

func NewPeakBranches() *PeakBranches {
	return &PeakBranches{name: "peak_branches"}
}

func (p *PeakBranches) Name() string { return p.name }

func (p *PeakBranches) Observe(s sim.Snapshot) {
	p.peak = max(p.peak, s.Live)
}

func (p *PeakBranches) Value() float64 { return float64(p.peak) }

func (p *PeakBranches) Reset() { p.peak = 0 }

// GlyphsDrawn counts visible tree events, leaf clusters included.
type GlyphsDrawn struct {
	name  string
	count int
}

func NewGlyphsDrawn() *GlyphsDrawn {
	return &GlyphsDrawn{name: "glyphs_drawn"}
}

func (g *GlyphsDrawn) Name() string { return g.name }

func (g *GlyphsDrawn) Observe(s sim.Snapshot) {
	g.count += len(s.Events)
}

func (g *GlyphsDrawn) Value() float64 { return float64(g.count) }

func (g *GlyphsDrawn) Reset() { g.count = 0 }

type cell struct{ x, y int }

// LeafCells is the number of canvas cells whose latest paint is a leaf color.
type LeafCells struct {
	name  string
	cells map[cell]struct{}
}

func NewLeafCells() *LeafCells {
	return &LeafCells{name: "leaf_cells", cells: make(map[cell]struct{})}
}

func (l *LeafCells) Name() string { return l.name }

func (l *LeafCells) Observe(s sim.Snapshot) {
	for _, e := range s.Events {
		if e.Layer != growth.LayerTree {
			continue
		}
		c := cell{e.X, e.Y}
		if e.Color.IsLeaf() {
			l.cells[c] = struct{}{}
		} else {
			delete(l.cells, c)
		}
	}
}

func (l *LeafCells) Value() float64 { return float64(len(l.cells)) }

func (l *LeafCells) Reset() { clear(l.cells) }
