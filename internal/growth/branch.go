package growth

import "math/bits"

// historySize is the window of the moving average used to anchor leaf clusters.
const historySize = 3

type Point struct {
	X, Y int
}

// Branch is one growth point of the tree.
type Branch struct {
	X, Y          int
	Dx, Dy        int
	Life          int
	Age           int
	TotalLife     int
	Kind          Kind
	ShootCooldown int
	DripCooldown  int
	Multiplier    int
	LeafSeed      uint64

	history  [historySize]Point
	histLen  int
	histNext int
}

func newBranch(kind Kind, x, y, life, multiplier, shootCooldown, dripCooldown int, leafSeed uint64) *Branch {
	b := &Branch{
		X:             x,
		Y:             y,
		Life:          life,
		TotalLife:     life,
		Kind:          kind,
		ShootCooldown: shootCooldown,
		DripCooldown:  dripCooldown,
		Multiplier:    multiplier,
		LeafSeed:      leafSeed,
	}
	b.record()
	return b
}

// record pushes the current position into the history ring, overwriting the oldest.
func (b *Branch) record() {
	b.history[b.histNext] = Point{X: b.X, Y: b.Y}
	b.histNext = (b.histNext + 1) % historySize
	if b.histLen < historySize {
		b.histLen++
	}
}

// Anchor is the average of the recorded positions.
func (b *Branch) Anchor() Point {
	if b.histLen == 0 {
		return Point{X: b.X, Y: b.Y}
	}
	var sx, sy int
	for i := 0; i < b.histLen; i++ {
		sx += b.history[i].X
		sy += b.history[i].Y
	}
	return Point{X: sx / b.histLen, Y: sy / b.histLen}
}

// LeafBudget sizes the leaf cluster a structural branch leaves behind. It grows
// with the log of its age and with the share of its life it has lived.
func (b *Branch) LeafBudget() int {
	budget := bits.Len(uint(max(b.Age, 0)))
	if b.TotalLife > 0 {
		factor := 3.0
		if b.Kind == Trunk {
			factor = 4.0
		}
		budget += int(float64(b.Age) / float64(b.TotalLife) * factor)
	}
	return budget
}

// LeafKind is the filler a structural branch turns into.
func (b *Branch) LeafKind() Kind {
	if b.Kind == Trunk {
		return Dead
	}
	return Dying
}
