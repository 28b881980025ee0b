package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type tone int

const (
	tonePot tone = iota
	toneSoil
	toneTrunk
)

type span struct {
	text string
	tone tone
}

type baseArt struct {
	width, height int
	bold          bool
	lines         [][]span
}

var bases = map[int]baseArt{
	1: {
		width: 31, height: 4, bold: true,
		lines: [][]span{
			{{":", tonePot}, {"__________", toneSoil}, {"./~~~~\\.", toneTrunk}, {"___________", toneSoil}, {":", tonePot}},
			{{" \\                           / ", tonePot}},
			{{"  \\_________________________/ ", tonePot}},
			{{"  (_)                     (_)", tonePot}},
		},
	},
	2: {
		width: 15, height: 3,
		lines: [][]span{
			{{"(", tonePot}, {"---", toneSoil}, {"./~~~~\\.", toneTrunk}, {"--", toneSoil}, {")", tonePot}},
			{{" (           ) ", tonePot}},
			{{"  (_________)  ", tonePot}},
		},
	},
}

// BaseHeight is the number of rows the pot art takes; 0 for no base.
func BaseHeight(kind int) int { return bases[kind].height }

func BaseWidth(kind int) int { return bases[kind].width }

func (t Theme) toneStyle(tn tone, bold bool) lipgloss.Style {
	var fg lipgloss.TerminalColor
	switch tn {
	case toneSoil:
		fg = t.Soil
	case toneTrunk:
		fg = t.Trunk
	default:
		fg = t.Pot
		bold = true
	}
	s := lipgloss.NewStyle().Bold(bold)
	if fg != nil {
		s = s.Foreground(fg)
	}
	return s
}

// BaseLines renders the pot art centered in a screen cols wide.
func BaseLines(kind int, t Theme, cols int) []string {
	art, ok := bases[kind]
	if !ok {
		return nil
	}
	pad := strings.Repeat(" ", max(cols/2-art.width/2, 0))

	lines := make([]string, 0, art.height)
	var b strings.Builder
	for _, row := range art.lines {
		b.Reset()
		b.WriteString(pad)
		for _, sp := range row {
			b.WriteString(t.toneStyle(sp.tone, art.bold).Render(sp.text))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Frame stacks the rendered tree above its base.
func Frame(tree *Canvas, kind int, t Theme) string {
	lines := append(t.Render(tree), BaseLines(kind, t, tree.Width)...)
	return strings.Join(lines, "\n")
}
