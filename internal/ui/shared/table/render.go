package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

// columnWidths gives fixed columns their width and splits the rest evenly
// between flex columns. Separators between columns take one cell each.
func columnWidths(cols []ColumnConfig, inner int) []int {
	widths := make([]int, len(cols))
	remaining := inner - (len(cols) - 1)
	flex := 0

	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			remaining -= c.Width
		} else {
			flex++
		}
	}

	if flex == 0 {
		return widths
	}

	share := max(remaining/flex, 0)
	extra := max(remaining-share*flex, 0)
	for i, c := range cols {
		if c.Width > 0 {
			continue
		}
		w := share
		if extra > 0 {
			w++
			extra--
		}
		widths[i] = max(w, c.MinWidth, 1)
	}
	return widths
}

// fit truncates s to width display cells and pads it according to align.
func fit(s string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = truncate.StringWithTail(s, uint(width), ellipsis)
	}

	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}

	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + s
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// safeRender calls the column's Render, turning a panic into a visible marker.
func safeRender(row any, col ColumnConfig, width int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("!ERR:%v", r)
		}
	}()
	return col.Render(row, col.Key, width)
}
