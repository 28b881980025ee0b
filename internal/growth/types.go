package growth

import "fmt"

const (
	DefaultLife       = 120
	DefaultMultiplier = 8
)

// DefaultLeaves is the glyph palette used when none is configured.
var DefaultLeaves = []string{"█", "█", "█", "▒", "▒"}

// Kind is the lifecycle role of a branch.
type Kind int

const (
	Trunk Kind = iota
	ShootLeft
	ShootRight
	Dying
	Dead
)

func (k Kind) String() string {
	switch k {
	case Trunk:
		return "trunk"
	case ShootLeft:
		return "shoot-left"
	case ShootRight:
		return "shoot-right"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) IsShoot() bool { return k == ShootLeft || k == ShootRight }

// Grows reports whether the kind is a structural branch rather than leaf filler.
func (k Kind) Grows() bool { return k == Trunk || k.IsShoot() }

// ColorClass is the abstract color a draw event asks the renderer for.
type ColorClass int

const (
	ColorTrunk ColorClass = iota
	ColorTrunkBold
	ColorBranch
	ColorBranchBold
	ColorLeaf
	ColorLeafBold
	ColorLeafDark
	ColorLeafDarkBold
)

func (c ColorClass) Bold() bool {
	switch c {
	case ColorTrunkBold, ColorBranchBold, ColorLeafBold, ColorLeafDarkBold:
		return true
	}
	return false
}

func (c ColorClass) IsLeaf() bool { return c >= ColorLeaf }

// Layer separates the permanent tree from the per-tick procedural leaf preview.
type Layer int

const (
	LayerTree Layer = iota
	LayerOverlay
)

// Event is one glyph handed to the rendering surface.
type Event struct {
	X, Y  int
	Glyph string
	Color ColorClass
	Layer Layer
	Tick  uint64
}

// Bounds are the canvas extents the tree grows in.
type Bounds struct {
	Rows, Cols int
}

func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}

// Params are the tunables of a single tree.
type Params struct {
	Life       int
	Multiplier int
	Leaves     []string
	Procedural bool
}

func DefaultParams() Params {
	return Params{
		Life:       DefaultLife,
		Multiplier: DefaultMultiplier,
		Leaves:     DefaultLeaves,
	}
}

func (p Params) Validate() error {
	if p.Life < 0 {
		return &ParamError{Field: "life", Value: p.Life, Wrapped: ErrNegativeLife}
	}
	if p.Multiplier < 0 {
		return &ParamError{Field: "multiplier", Value: p.Multiplier, Wrapped: ErrNegativeMultiplier}
	}
	for _, l := range p.Leaves {
		if l != "" {
			return nil
		}
	}
	return ErrEmptyPalette
}

// Counters are the global tallies of one tree.
type Counters struct {
	Tick          uint64
	Trunks        int
	Shoots        int
	Branches      int
	SplitCooldown int

	// nextRight selects the side of the next shoot.
	nextRight bool
}
