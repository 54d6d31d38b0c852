package dial

import (
	"math"
	"strings"
)

// Glyphs used by [Render].
const (
	GlyphOutline   = '·'
	GlyphIndicator = '•'
	GlyphCentre    = '+'
	GlyphEmpty     = ' '
)

// Render draws a dial at angle into a grid of cols x rows terminal cells and
// returns one string per row. Cells are assumed to be twice as tall as they are
// wide, so the outline is an ellipse in cell space and a circle on screen.
func Render(angle float64, cols, rows int) []string {
	if cols < 3 || rows < 3 {
		return nil
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(GlyphEmpty), cols))
	}

	cx := float64(cols-1) / 2
	cy := float64(rows-1) / 2
	rx := cx
	ry := cy

	plot := func(x, y float64, r rune) {
		col := int(math.Round(x))
		row := int(math.Round(y))

		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}

		grid[row][col] = r
	}

	for deg := 0; deg < 360; deg += 6 {
		rad := float64(deg) * math.Pi / 180
		plot(cx+rx*math.Cos(rad), cy-ry*math.Sin(rad), GlyphOutline)
	}

	// The indicator points where the pointer was dragged.
	rad := (angle - Offset) * math.Pi / 180
	for t := 0.25; t <= 0.75; t += 0.05 {
		plot(cx+rx*t*math.Cos(rad), cy-ry*t*math.Sin(rad), GlyphIndicator)
	}

	plot(cx, cy, GlyphCentre)

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}

	return lines
}
