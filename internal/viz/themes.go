package viz

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bonsai/internal/growth"
)

// Theme maps the abstract color classes of the tree onto terminal colors.
type Theme struct {
	Name     string
	Trunk    lipgloss.TerminalColor
	Branch   lipgloss.TerminalColor
	Leaf     lipgloss.TerminalColor
	LeafDark lipgloss.TerminalColor
	Pot      lipgloss.TerminalColor
	Soil     lipgloss.TerminalColor
	Frame    lipgloss.TerminalColor
}

// Style returns the lipgloss style for a color class.
func (t Theme) Style(c growth.ColorClass) lipgloss.Style {
	var fg lipgloss.TerminalColor
	switch c {
	case growth.ColorTrunk, growth.ColorTrunkBold:
		fg = t.Trunk
	case growth.ColorBranch, growth.ColorBranchBold:
		fg = t.Branch
	case growth.ColorLeaf, growth.ColorLeafBold:
		fg = t.Leaf
	default:
		fg = t.LeafDark
	}
	s := lipgloss.NewStyle().Bold(c.Bold())
	if fg != nil {
		s = s.Foreground(fg)
	}
	return s
}

func (t Theme) frameStyle() lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if t.Frame != nil {
		s = s.Foreground(t.Frame)
	}
	return s
}

// Render renders a canvas with the theme, one line per row.
func (t Theme) Render(c *Canvas) []string {
	styles := make(map[growth.ColorClass]lipgloss.Style)
	frame := t.frameStyle()
	return c.Lines(func(cell Cell) func(string) string {
		if cell.Frame {
			return func(g string) string { return frame.Render(g) }
		}
		s, ok := styles[cell.Color]
		if !ok {
			s = t.Style(cell.Color)
			styles[cell.Color] = s
		}
		return func(g string) string { return s.Render(g) }
	})
}

var (
	ThemeClassic = Theme{
		Name:     "classic",
		Trunk:    lipgloss.Color("3"),
		Branch:   lipgloss.Color("3"),
		Leaf:     lipgloss.Color("2"),
		LeafDark: lipgloss.Color("2"),
		Pot:      lipgloss.Color("7"),
		Soil:     lipgloss.Color("2"),
		Frame:    lipgloss.Color("7"),
	}

	ThemeMono = Theme{
		Name: "mono",
	}
)

var themeNames = []string{"season", "classic", "mono"}

// GetTheme returns a theme by name. The season theme depends on now.
func GetTheme(name string, now time.Time) Theme {
	switch name {
	case "classic":
		return ThemeClassic
	case "mono":
		return ThemeMono
	}
	return SeasonTheme(now.YearDay() - 1)
}

func ThemeNames() []string {
	return append([]string(nil), themeNames...)
}
