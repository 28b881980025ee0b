package growth

import "github.com/san-kum/bonsai/internal/rng"

// fallbackGlyph is drawn for a kind/direction combination with no glyph.
const fallbackGlyph = "?"

func chooseColor(s *rng.Stream, kind Kind) ColorClass {
	switch kind {
	case Trunk:
		switch r := s.Intn(4); {
		case r < 2:
			return ColorTrunkBold
		case r == 2:
			return ColorTrunk
		default:
			return ColorBranch
		}
	case ShootLeft, ShootRight:
		switch r := s.Intn(10); {
		case r < 2:
			return ColorTrunkBold
		case r < 6:
			return ColorBranchBold
		default:
			return ColorBranch
		}
	case Dying:
		switch r := s.Intn(6); {
		case r < 3:
			return ColorLeaf
		case r < 5:
			return ColorLeafBold
		default:
			return ColorLeafDark
		}
	case Dead:
		switch r := s.Intn(18); {
		case r < 2:
			return ColorLeafDarkBold
		case r < 8:
			return ColorLeafBold
		default:
			return ColorLeaf
		}
	}
	return ColorTrunk
}

// leafColor is the color of one leaf generator glyph. Draws are short-circuited
// the same way the choice is, so the leaf stream stays aligned.
func leafColor(s *rng.Stream, kind Kind) ColorClass {
	switch kind {
	case Dying:
		if s.Intn(6) == 0 {
			return ColorLeaf
		}
	case Dead:
		if s.Intn(7) == 0 {
			return ColorLeafBold
		}
	default:
		return ColorLeaf
	}
	if s.Intn(2) == 0 {
		return ColorLeafDarkBold
	}
	return ColorLeafDark
}

func chooseGlyph(s *rng.Stream, leaves []string, kind Kind, life, dx, dy int) string {
	if life < 4 {
		kind = Dying
	}

	switch kind {
	case Trunk:
		switch {
		case dy == 0:
			return "/~"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|\\"
		default:
			return "|/"
		}
	case ShootLeft:
		switch {
		case dy > 0:
			return "\\"
		case dy == 0:
			return "\\_"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|"
		default:
			return "/"
		}
	case ShootRight:
		switch {
		case dy > 0:
			return "/"
		case dy == 0:
			return "_/"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|"
		default:
			return "/"
		}
	case Dying, Dead:
		return pickLeaf(s, leaves)
	}
	return fallbackGlyph
}

func pickLeaf(s *rng.Stream, leaves []string) string {
	if len(leaves) == 0 {
		return fallbackGlyph
	}
	return leaves[s.Intn(len(leaves))]
}
