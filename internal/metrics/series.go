package metrics

import "github.com/san-kum/bonsai/internal/sim"

// Series records the live branch count after every step. As a metric its value
// is the mean over the run.
type Series struct {
	name   string
	points []float64
	limit  int
}

// NewSeries keeps at most limit points; older points are dropped. A limit of
// zero keeps everything.
func NewSeries(limit int) *Series {
	return &Series{name: "mean_live_branches", limit: limit}
}

func (s *Series) Name() string { return s.name }

func (s *Series) OnTick(snap sim.Snapshot) { s.Observe(snap) }

func (s *Series) Observe(snap sim.Snapshot) {
	if !snap.Stepped {
		return
	}
	s.points = append(s.points, float64(snap.Live))
	if s.limit > 0 && len(s.points) > s.limit {
		s.points = s.points[len(s.points)-s.limit:]
	}
}

func (s *Series) Points() []float64 { return s.points }

func (s *Series) Value() float64 {
	if len(s.points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.points {
		sum += p
	}
	return sum / float64(len(s.points))
}

func (s *Series) Reset() { s.points = s.points[:0] }
