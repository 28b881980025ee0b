package viz

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the finished tree and its base to w, dropping blank rows above
// the crown.
func Print(w io.Writer, tree *Canvas, kind int, t Theme) error {
	plain := tree.Lines(nil)
	first := 0
	for first < len(plain) && strings.TrimSpace(plain[first]) == "" {
		first++
	}

	lines := append(t.Render(tree)[first:], BaseLines(kind, t, tree.Width)...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
