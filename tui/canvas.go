package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// Canvas is the render surface for the player. It keeps the most recent frame
// and draws it as ANSI half-block characters, where each terminal cell shows
// two vertical pixels: the top pixel as the foreground and the bottom pixel
// as the background of a "▀".
//
// Create instances with [NewCanvas].
type Canvas struct {
	frame  *image.RGBA
	cache  string
	anchor image.Point
	cols   int
	rows   int
	dirty  bool
}

// NewCanvas returns an empty [Canvas].
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Render replaces the displayed frame. anchor is the top-left position of the
// frame in surface pixels.
func (c *Canvas) Render(img *image.RGBA, anchor image.Point) {
	c.frame = img
	c.anchor = anchor
	c.dirty = true
}

// Frame returns the most recently rendered frame, or nil.
func (c *Canvas) Frame() *image.RGBA {
	return c.frame
}

// View returns the frame drawn into cols x rows cells, one line per row. An
// empty canvas is drawn as blank lines.
func (c *Canvas) View(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	if c.frame == nil {
		return strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", cols)+"\n", rows), "\n")
	}

	if !c.dirty && c.cols == cols && c.rows == rows {
		return c.cache
	}

	var b strings.Builder

	renderCells(fitTopLeft(c.frame, c.anchor, cols, rows), cols, rows, &b)

	c.cache = b.String()
	c.cols, c.rows = cols, rows
	c.dirty = false

	return c.cache
}

// fitTopLeft scales img to fit within cols x rows cells, keeping its aspect
// ratio, and places it at anchor. The rest of the surface is black.
func fitTopLeft(img *image.RGBA, anchor image.Point, cols, rows int) *image.RGBA {
	pixW := cols
	pixH := rows * 2

	dst := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	srcBounds := img.Bounds()
	srcW := srcBounds.Dx()
	srcH := srcBounds.Dy()
	availW := pixW - anchor.X
	availH := pixH - anchor.Y

	if srcW == 0 || srcH == 0 || availW <= 0 || availH <= 0 {
		return dst
	}

	scaleX := float64(availW) / float64(srcW)
	scaleY := float64(availH) / float64(srcH)
	scale := min(scaleX, scaleY)

	newW := max(int(float64(srcW)*scale), 1)
	newH := max(int(float64(srcH)*scale), 1)

	dstRect := image.Rect(anchor.X, anchor.Y, anchor.X+newW, anchor.Y+newH)

	if newW == srcW && newH == srcH {
		draw.Copy(dst, dstRect.Min, img, srcBounds, draw.Src, nil)

		return dst
	}

	draw.ApproxBiLinear.Scale(dst, dstRect, img, srcBounds, draw.Src, nil)

	return dst
}

// renderCells writes ANSI-styled half-block characters for img to w, one line
// per terminal row, without a trailing newline.
func renderCells(img *image.RGBA, cols, rows int, w *strings.Builder) {
	pixH := img.Bounds().Dy()

	for row := range rows {
		if row > 0 {
			w.WriteByte('\n')
		}

		topY := row * 2
		botY := topY + 1

		for x := range cols {
			top := img.RGBAAt(x, topY)

			var bot color.RGBA
			if botY < pixH {
				bot = img.RGBAAt(x, botY)
			}

			fmt.Fprintf(w, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}

		w.WriteString("\033[0m")
	}
}
