package viz

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/bonsai/internal/growth"
)

// Cell is one character cell. Glyph is empty for blank cells.
type Cell struct {
	Glyph string
	Color growth.ColorClass
	Frame bool
}

// Canvas is a grid of character cells holding one rune each. A wide rune
// occupies its cell and blanks the cells to its right.
type Canvas struct {
	Width, Height int
	Grid          [][]Cell
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]Cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]Cell, w)
	}
	return c
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// Paint draws an event one rune per cell, starting at the event's column. A
// glyph led by a wide rune is only placed on columns divisible by that rune's
// width so wide glyphs never straddle each other.
func (c *Canvas) Paint(e growth.Event) bool {
	if !c.inside(e.X, e.Y) || e.Glyph == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(e.Glyph)
	if w := runewidth.RuneWidth(first); w > 1 && e.X%w != 0 {
		return false
	}
	x := e.X
	for _, r := range e.Glyph {
		c.put(x, e.Y, Cell{Glyph: string(r), Color: e.Color})
		x += max(runewidth.RuneWidth(r), 1)
	}
	return true
}

// put writes one cell. A wide rune blanks the cells it covers, and a write
// into a covered cell removes the wide rune covering it.
func (c *Canvas) put(x, y int, cell Cell) {
	if !c.inside(x, y) {
		return
	}
	row := c.Grid[y]
	if x > 0 && cellWidth(row[x-1].Glyph) > 1 {
		row[x-1] = Cell{}
	}
	row[x] = cell
	for i := 1; i < cellWidth(cell.Glyph) && x+i < c.Width; i++ {
		row[x+i] = Cell{}
	}
}

func cellWidth(glyph string) int {
	return max(runewidth.StringWidth(glyph), 1)
}

// PaintAll draws events in order and returns how many landed.
func (c *Canvas) PaintAll(events []growth.Event) int {
	n := 0
	for _, e := range events {
		if c.Paint(e) {
			n++
		}
	}
	return n
}

// Text stamps s at (x, y) in the frame style, one cell per rune.
func (c *Canvas) Text(x, y int, s string) {
	for _, r := range s {
		c.put(x, y, Cell{Glyph: string(r), Frame: true})
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func (c *Canvas) At(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{}
	}
	return c.Grid[y][x]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		clear(c.Grid[i])
	}
}

func (c *Canvas) Clone() *Canvas {
	out := NewCanvas(c.Width, c.Height)
	for i := range c.Grid {
		copy(out.Grid[i], c.Grid[i])
	}
	return out
}

// Composite returns a copy of c with the painted cells of over on top.
func (c *Canvas) Composite(over *Canvas) *Canvas {
	out := c.Clone()
	if over == nil {
		return out
	}
	for y := 0; y < min(over.Height, out.Height); y++ {
		for x := 0; x < min(over.Width, out.Width); x++ {
			if cell := over.Grid[y][x]; cell.Glyph != "" {
				out.put(x, y, cell)
			}
		}
	}
	return out
}

// Lines renders every row through style. A nil style yields plain text.
func (c *Canvas) Lines(style func(Cell) func(string) string) []string {
	lines := make([]string, c.Height)
	var b strings.Builder
	for y, row := range c.Grid {
		b.Reset()
		for x := 0; x < len(row); {
			cell := row[x]
			if cell.Glyph == "" {
				b.WriteByte(' ')
				x++
				continue
			}
			if style != nil {
				b.WriteString(style(cell)(cell.Glyph))
			} else {
				b.WriteString(cell.Glyph)
			}
			x += cellWidth(cell.Glyph)
		}
		lines[y] = b.String()
	}
	return lines
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, line := range c.Lines(nil) {
		b.WriteString(line + "\n")
	}
	return b.String()
}
