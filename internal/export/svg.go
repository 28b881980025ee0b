package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bonsai/internal/viz"
)

// ansiHex approximates the 16 basic terminal colors.
var ansiHex = [16]string{
	"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
	"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
}

const defaultInk = "#e5e5e5"

func colorHex(c lipgloss.TerminalColor) string {
	col, ok := c.(lipgloss.Color)
	if !ok || col == "" {
		return defaultInk
	}
	s := string(col)
	if strings.HasPrefix(s, "#") {
		return s
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n >= 0 && n < len(ansiHex) {
		return ansiHex[n]
	}
	return defaultInk
}

func cellHex(cell viz.Cell, theme viz.Theme) string {
	if cell.Frame {
		return colorHex(theme.Frame)
	}
	style := theme.Style(cell.Color)
	return colorHex(style.GetForeground())
}

// CanvasToSVG renders every painted cell as a <text> element on a cell grid
// scale pixels wide and twice as tall.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	cw, ch := scale, scale*2
	width := float64(canvas.Width) * cw
	height := float64(canvas.Height) * ch

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.1f" dominant-baseline="text-before-edge">
`, width, height, width, height, ch*0.9))

	for y, row := range canvas.Grid {
		for x, cell := range row {
			if cell.Glyph == "" || cell.Glyph == " " {
				continue
			}
			weight := ""
			if cell.Frame || cell.Color.Bold() {
				weight = ` font-weight="bold"`
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s"%s>%s</text>
`, float64(x)*cw, float64(y)*ch, cellHex(cell, theme), weight, html.EscapeString(cell.Glyph)))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
