package growth

import (
	"fmt"

	"github.com/san-kum/bonsai/internal/rng"
)

// Tree is the growth engine state of one tree: its branches, counters and the
// main random stream every decision draws from.
type Tree struct {
	params   Params
	bounds   Bounds
	stream   *rng.Stream
	registry *Registry
	counters Counters
}

// NewTree validates the parameters and plants the initial trunk at the bottom
// center of the canvas.
func NewTree(p Params, bounds Bounds, stream *rng.Stream) (*Tree, error) {
	p.Leaves = cleanPalette(p.Leaves)
	if len(p.Leaves) == 0 {
		p.Leaves = DefaultLeaves
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tree parameters: %w", err)
	}
	if bounds.Rows <= 0 || bounds.Cols <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", bounds.Cols, bounds.Rows, ErrBounds)
	}

	t := &Tree{
		params:   p,
		bounds:   bounds,
		stream:   stream,
		registry: NewRegistry(),
	}
	t.add(newBranch(Trunk, bounds.Cols/2, bounds.Rows-1, p.Life, p.Multiplier,
		p.Multiplier, p.Multiplier+p.Life/4, stream.Seed()))
	return t, nil
}

func cleanPalette(leaves []string) []string {
	out := make([]string, 0, len(leaves))
	for _, l := range leaves {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func (t *Tree) Params() Params      { return t.params }
func (t *Tree) Bounds() Bounds      { return t.bounds }
func (t *Tree) Registry() *Registry { return t.registry }
func (t *Tree) Counters() Counters  { return t.counters }
func (t *Tree) Done() bool          { return t.registry.Len() == 0 }

func (t *Tree) add(b *Branch) {
	t.registry.Add(b)
	t.counters.Branches++
}

// Step advances b by one tick and returns the glyph it draws. New branches the
// spawn policy creates are appended to the registry.
func (t *Tree) Step(b *Branch) Event {
	b.Life--

	switch {
	case b.Kind == Trunk:
		if t.stream.Intn(66) == 0 {
			b.Life -= b.Life / 2
		}
	case b.Kind.IsShoot():
		if t.stream.Intn(20) == 0 {
			b.Life /= 2
		}
	}

	b.Age++

	b.Dx, b.Dy = Deltas(t.stream, b.Kind, b.Life, b.TotalLife, b.Age, b.Multiplier)
	if b.Dy > 0 && b.Y > t.bounds.Rows-2 {
		b.Dy--
	}

	t.spawn(b)

	t.counters.SplitCooldown--
	b.ShootCooldown--
	b.DripCooldown--

	b.X += b.Dx
	b.Y += b.Dy
	b.record()

	e := Event{X: b.X, Y: b.Y}
	e.Color = chooseColor(t.stream, b.Kind)
	e.Glyph = chooseGlyph(t.stream, t.params.Leaves, b.Kind, b.Life, b.Dx, b.Dy)
	e.Tick = t.counters.Tick
	t.counters.Tick++
	return e
}

// Retire emits the leaf cluster a structural branch leaves at its smoothed
// position when procedural leaves are enabled. It does not touch the main stream.
func (t *Tree) Retire(b *Branch, emit func(Event)) int {
	if !t.params.Procedural || !b.Kind.Grows() {
		return 0
	}
	return Leaves(t.leafJob(b, LayerTree), emit)
}

// Overlay emits the leaf preview of every live structural branch.
func (t *Tree) Overlay(emit func(Event)) int {
	work := 0
	t.registry.Each(func(_ int, b *Branch) bool {
		if b.Kind.Grows() {
			work += Leaves(t.leafJob(b, LayerOverlay), emit)
		}
		return true
	})
	return work
}

func (t *Tree) leafJob(b *Branch, layer Layer) LeafJob {
	return LeafJob{
		Kind:    b.LeafKind(),
		At:      b.Anchor(),
		Budget:  b.LeafBudget(),
		Seed:    b.LeafSeed,
		Bounds:  t.bounds,
		Palette: t.params.Leaves,
		Layer:   layer,
		Tick:    t.counters.Tick,
	}
}
