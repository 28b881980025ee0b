package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// MessageBox word-wraps msg into a bordered box sized for a screen cols wide.
func MessageBox(msg string, cols int) []string {
	if msg == "" {
		return nil
	}
	width := runewidth.StringWidth(msg) + 1
	if width+2 > cols/4 {
		width = max(cols/4, 1)
	}
	box := lipgloss.NewStyle().
		Border(messageBorder).
		Padding(0, 1).
		Width(width + 2).
		Render(msg)
	return strings.Split(box, "\n")
}

// StampMessage draws the message box onto c, anchored at 70% across and 30%
// down a screen screenRows tall.
func StampMessage(c *Canvas, msg string, screenRows int) {
	box := MessageBox(msg, c.Width)
	if len(box) == 0 {
		return
	}
	x := max(int(float64(c.Width)*0.7)-2, 0)
	y := max(int(float64(screenRows)*0.3)-1, 0)
	for i, line := range box {
		c.Text(x, y+i, line)
	}
}
