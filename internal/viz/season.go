package viz

import "github.com/charmbracelet/lipgloss"

type season int

const (
	spring season = iota
	summer
	earlyFall
	lateFall
	winter
)

// leaf colors per season on a 0-1000 scale, main then darker variant
var seasonColors = [5][6]int{
	spring:    {350, 800, 350, 500, 800, 500},
	summer:    {0, 700, 0, 0, 520, 0},
	earlyFall: {1000, 900, 80, 1000, 600, 80},
	lateFall:  {900, 100, 100, 450, 50, 50},
	winter:    {900, 900, 900, 750, 750, 750},
}

// seasonAt returns the season for a zero-based day of the year and how far the
// transition from the previous season has progressed, from 0 to 1.
func seasonAt(day int) (season, float64) {
	const (
		springStart = 20
		summerStart = 100
		fallStart   = 220
		fallLate    = 260
		winterStart = 320
	)

	var s season
	var into, period int
	switch {
	case day >= winterStart || day < springStart:
		s, period = winter, 10
		if day >= winterStart {
			into = day - winterStart
		} else {
			into = 365 - winterStart + day
		}
	case day >= fallStart && day < fallLate:
		s, period, into = earlyFall, 40, day-fallStart
	case day >= fallLate:
		s, period, into = lateFall, 25, day-fallLate
	case day >= summerStart:
		s, period, into = summer, 20, day-summerStart
	default:
		s, period, into = spring, 10, day-springStart
	}

	return s, min(float64(into)/float64(period), 1)
}

// SeasonTheme blends the leaf colors of the previous and current season.
func SeasonTheme(day int) Theme {
	s, ratio := seasonAt(day)
	cur, prev := seasonColors[s], seasonColors[(s+4)%5]

	var mixed [6]int
	for i := range mixed {
		v := float64(prev[i])*(1-ratio) + float64(cur[i])*ratio
		mixed[i] = int(v) * 255 / 1000
	}

	return Theme{
		Name:     "season",
		Trunk:    lipgloss.Color(hexColor(540*255/1000, 270*255/1000, 0)),
		Branch:   lipgloss.Color(hexColor(280*255/1000, 140*255/1000, 0)),
		Leaf:     lipgloss.Color(hexColor(mixed[0], mixed[1], mixed[2])),
		LeafDark: lipgloss.Color(hexColor(mixed[3], mixed[4], mixed[5])),
		Pot:      lipgloss.Color("7"),
		Soil:     lipgloss.Color(hexColor(mixed[3], mixed[4], mixed[5])),
		Frame:    lipgloss.Color("7"),
	}
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = min(max(v, 0), 255)
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
