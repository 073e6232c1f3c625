// Package overlay draws one block of terminal content on top of another
// without clearing what lies around it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the viewport.
	Center Position = iota
	// Top places the overlay at the top centre of the viewport.
	Top
	// Bottom places the overlay at the bottom centre of the viewport.
	Bottom
	// Anchor places the overlay's top-left corner at (X, Y).
	Anchor
)

// Config controls overlay rendering.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY is the distance from the edge for Top and Bottom.
	PadY int
	// X and Y are used by Anchor.
	X int
	Y int
}

// Place renders fg on top of bg. Styling in both is preserved.
// With Anchor the background grows downward when fg extends past its end,
// like a dropdown hanging below the last line.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	startX, startY := position(cfg, lipgloss.Width(fg), len(fgLines))

	height := cfg.Height
	if cfg.Position == Anchor && startY+len(fgLines) > height {
		height = startY + len(fgLines)
	}
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = splice(bgLines[y], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at column x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	end := x + ansi.StringWidth(fg)
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}

	return left + fg + right
}

func position(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Anchor:
		x, y = cfg.X, cfg.Y
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	return max(x, 0), max(y, 0)
}
