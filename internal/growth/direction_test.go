package growth

import (
	"testing"

	"github.com/san-kum/bonsai/internal/rng"
)

func TestDiceCoverAllSides(t *testing.T) {
	dice := map[string]die{
		"trunkDx":       trunkDx,
		"matureTrunkDy": matureTrunkDy,
		"matureTrunkDx": matureTrunkDx,
		"shootDy":       shootDy,
		"shootLeftDx":   shootLeftDx,
		"shootRightDx":  shootRightDx,
		"dyingDy":       dyingDy,
		"dyingDx":       dyingDx,
		"deadDy":        deadDy,
		"deadDx":        deadDx,
	}

	for name, d := range dice {
		t.Run(name, func(t *testing.T) {
			hits := make([]int, d.sides)
			for _, f := range d.faces {
				if f.lo > f.hi {
					t.Fatalf("face %v has lo > hi", f)
				}
				for n := f.lo; n <= f.hi; n++ {
					if n < 0 || n >= d.sides {
						t.Fatalf("face %v outside a %d-sided die", f, d.sides)
					}
					hits[n]++
				}
			}
			for n, h := range hits {
				if h != 1 {
					t.Errorf("roll %d covered %d times", n, h)
				}
			}
		})
	}
}

func TestDeltasRanges(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		life, age  int
		dxLo, dxHi int
		dyLo, dyHi int
	}{
		{"new trunk", Trunk, 100, 1, -1, 1, 0, 0},
		{"near dead trunk", Trunk, 3, 50, -1, 1, 0, 0},
		{"young trunk", Trunk, 100, 10, -2, 2, -1, 0},
		{"early trunk", Trunk, 100, 50, -2, 2, -1, 0},
		{"mature trunk", Trunk, 100, 100, -2, 2, -1, 0},
		{"left shoot", ShootLeft, 30, 5, -2, 1, -1, 1},
		{"right shoot", ShootRight, 30, 5, -1, 2, -1, 1},
		{"dying", Dying, 10, 1, -3, 3, -1, 1},
		{"dead", Dead, 5, 1, -3, 3, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rng.New(3)
			for i := 0; i < 2000; i++ {
				dx, dy := Deltas(s, tt.kind, tt.life, 120, tt.age, 8)
				if dx < tt.dxLo || dx > tt.dxHi {
					t.Fatalf("dx = %d outside [%d, %d]", dx, tt.dxLo, tt.dxHi)
				}
				if dy < tt.dyLo || dy > tt.dyHi {
					t.Fatalf("dy = %d outside [%d, %d]", dy, tt.dyLo, tt.dyHi)
				}
			}
		})
	}
}

func TestShootsTrendToTheirSide(t *testing.T) {
	s := rng.New(11)
	var left, right int
	for i := 0; i < 5000; i++ {
		dx, _ := Deltas(s, ShootLeft, 30, 30, 5, 8)
		left += dx
		dx, _ = Deltas(s, ShootRight, 30, 30, 5, 8)
		right += dx
	}
	if left >= 0 {
		t.Errorf("left shoots drifted right: sum dx = %d", left)
	}
	if right <= 0 {
		t.Errorf("right shoots drifted left: sum dx = %d", right)
	}
}

func TestYoungTrunkRiseGate(t *testing.T) {
	s := rng.New(5)
	every := riseEvery(8, 0.6)
	for age := 3; age < 18; age++ {
		_, dy := Deltas(s, Trunk, 100, 120, age, 8)
		want := 0
		if age%every == 0 {
			want = -1
		}
		if dy != want {
			t.Errorf("age %d: dy = %d, want %d", age, dy, want)
		}
	}
}

func TestRiseEvery(t *testing.T) {
	tests := []struct {
		multiplier int
		scale      float64
		want       int
	}{
		{8, 0.6, 5},
		{8, 0.3, 3},
		{10, 0.3, 3},
		{1, 0.3, 1},
		{0, 0.6, 1},
	}
	for _, tt := range tests {
		if got := riseEvery(tt.multiplier, tt.scale); got != tt.want {
			t.Errorf("riseEvery(%d, %.1f) = %d, want %d", tt.multiplier, tt.scale, got, tt.want)
		}
	}
}

func TestScatterNonLeafKind(t *testing.T) {
	s := rng.New(1)
	ref := rng.New(1)
	if dx, dy := scatter(s, Trunk); dx != 0 || dy != 0 {
		t.Errorf("scatter(Trunk) = (%d, %d), want (0, 0)", dx, dy)
	}
	if s.Intn(1000) != ref.Intn(1000) {
		t.Error("scatter(Trunk) consumed draws")
	}
}
