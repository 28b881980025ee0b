package tui

import (
	"fmt"

	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
)

// statusLines is the verbose diagnostics block drawn in the top left corner.
func statusLines(s *sim.Simulator, p pacer.Pacer) []string {
	c := s.Counters()
	lines := []string{
		fmt.Sprintf("seed: %d", s.Config().Seed),
		fmt.Sprintf("tick: %d", c.Tick),
		fmt.Sprintf("branches: %d live, %d total", s.Live(), c.Branches),
		fmt.Sprintf("shoots: %d  trunks: %d", c.Shoots, c.Trunks),
	}
	if p.Target > 0 {
		lines = append(lines, fmt.Sprintf("target: %d", p.Target))
	}
	if p.Live {
		lines = append(lines, fmt.Sprintf("seconds/tick: %.3f", p.Step.Seconds()))
	}
	return lines
}
