package growth

import "github.com/san-kum/bonsai/internal/rng"

// leafFrame is one pending level of the leaf scatter. After its child finishes
// the frame moves by (dx, dy) and paints.
type leafFrame struct {
	x, y   int
	budget int
	s      *rng.Stream
	dx, dy int
	resume bool
}

// LeafJob describes one leaf cluster.
type LeafJob struct {
	Kind    Kind
	At      Point
	Budget  int
	Seed    uint64
	Bounds  Bounds
	Palette []string
	Layer   Layer
	Tick    uint64
}

// Leaves scatters a cluster of leaf glyphs around job.At. Every iteration spends
// one unit of its frame's budget and spawns a child frame at the same position
// with the remaining budget before moving, so the cluster branches like a tree.
// It returns the number of iterations executed, which is 2^Budget - 1.
func Leaves(job LeafJob, emit func(Event)) int {
	if job.Budget <= 0 {
		return 0
	}

	stack := make([]leafFrame, 1, job.Budget+1)
	stack[0] = leafFrame{x: job.At.X, y: job.At.Y, budget: job.Budget, s: rng.FromSeed(job.Seed)}
	work := 0

	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]

		if f.resume {
			f.resume = false
			f.x += f.dx
			f.y += f.dy
			if job.Bounds.Contains(f.x, f.y) && emit != nil {
				color := leafColor(f.s, job.Kind)
				emit(Event{
					X:     f.x,
					Y:     f.y,
					Glyph: pickLeaf(f.s, job.Palette),
					Color: color,
					Layer: job.Layer,
					Tick:  job.Tick,
				})
			}
			continue
		}

		if f.budget <= 0 {
			stack = stack[:top]
			continue
		}

		f.budget--
		work++

		dx, dy := scatter(f.s, job.Kind)
		if dy > 0 && f.y > job.Bounds.Rows-2 {
			dy--
		}
		f.dx, f.dy = dx, dy
		f.resume = true

		child := leafFrame{x: f.x, y: f.y, budget: f.budget, s: rng.FromSeed(f.s.Seed())}
		if child.budget > 0 {
			stack = append(stack, child)
		}
	}

	return work
}
