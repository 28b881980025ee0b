package growth

import (
	"math"

	"github.com/san-kum/bonsai/internal/rng"
)

// face maps the inclusive roll range [lo, hi] to a displacement.
type face struct {
	lo, hi, v int
}

// die is a discrete weighted distribution over a fixed number of sides.
type die struct {
	sides int
	faces []face
}

func (d die) roll(s *rng.Stream) int {
	n := s.Intn(d.sides)
	for _, f := range d.faces {
		if n >= f.lo && n <= f.hi {
			return f.v
		}
	}
	return 0
}

var (
	trunkDx = die{10, []face{{0, 0, -2}, {1, 3, -1}, {4, 5, 0}, {6, 8, 1}, {9, 9, 2}}}

	matureTrunkDy = die{10, []face{{0, 4, 0}, {5, 9, -1}}}
	matureTrunkDx = die{20, []face{{0, 0, -2}, {1, 7, -1}, {8, 12, 0}, {13, 18, 1}, {19, 19, 2}}}

	shootDy      = die{10, []face{{0, 2, -1}, {3, 7, 0}, {8, 9, 1}}}
	shootLeftDx  = die{10, []face{{0, 1, -2}, {2, 5, -1}, {6, 8, 0}, {9, 9, 1}}}
	shootRightDx = die{10, []face{{0, 1, 2}, {2, 5, 1}, {6, 8, 0}, {9, 9, -1}}}

	dyingDy = die{10, []face{{0, 0, -1}, {1, 8, 0}, {9, 9, 1}}}
	dyingDx = die{15, []face{{0, 0, -3}, {1, 2, -2}, {3, 5, -1}, {6, 8, 0}, {9, 11, 1}, {12, 13, 2}, {14, 14, 3}}}

	deadDy = die{12, []face{{0, 1, -1}, {2, 8, 0}, {9, 11, 1}}}
	deadDx = die{15, []face{{0, 1, -3}, {2, 3, -2}, {4, 5, -1}, {6, 8, 0}, {9, 10, 1}, {11, 12, 2}, {13, 14, 3}}}
)

func isYoung(age, totalLife int) bool { return age < totalLife*3/20 }

func isEarly(age, totalLife int) bool { return age < totalLife*14/20 }

// riseEvery is how many ticks a young or early trunk waits between rising a row.
func riseEvery(multiplier int, scale float64) int {
	return max(1, int(math.Ceil(float64(multiplier)*scale)))
}

// Deltas computes the displacement of a branch for one tick.
func Deltas(s *rng.Stream, kind Kind, life, totalLife, age, multiplier int) (dx, dy int) {
	switch kind {
	case Trunk:
		switch {
		case age <= 2 || life < 4:
			dx = s.Intn(3) - 1
		case isYoung(age, totalLife):
			if age%riseEvery(multiplier, 0.6) == 0 {
				dy = -1
			}
			dx = trunkDx.roll(s)
		case isEarly(age, totalLife):
			if age%riseEvery(multiplier, 0.3) == 0 {
				dy = -1
			}
			dx = trunkDx.roll(s)
		default:
			dy = matureTrunkDy.roll(s)
			dx = matureTrunkDx.roll(s)
		}
	case ShootLeft:
		dy = shootDy.roll(s)
		dx = shootLeftDx.roll(s)
	case ShootRight:
		dy = shootDy.roll(s)
		dx = shootRightDx.roll(s)
	case Dying:
		dy = dyingDy.roll(s)
		dx = dyingDx.roll(s)
	case Dead:
		dy = deadDy.roll(s)
		dx = deadDx.roll(s)
	}
	return dx, dy
}

// scatter is the leaf generator jitter; it mirrors the dying and dead tables.
func scatter(s *rng.Stream, kind Kind) (dx, dy int) {
	switch kind {
	case Dying:
		dy = dyingDy.roll(s)
		dx = dyingDx.roll(s)
	case Dead:
		dy = deadDy.roll(s)
		dx = deadDx.roll(s)
	}
	return dx, dy
}
