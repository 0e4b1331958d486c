package viz

import (
	"strings"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// Braille patterns: each character cell is a 2x4 dot block starting at
// unicode offset 0x2800.
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille character grid. Drawing coordinates are sub-pixel:
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize reports the drawable sub-pixel dimensions.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
		}
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= pixelMap[y%4][x%2]
}

// Line draws with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawFrame rasterizes a sketch frame. Braille cells are binary, so edge
// weight maps to a draw threshold instead of alpha.
func (c *Canvas) DrawFrame(f sketch.Frame, minWeight float64) {
	for _, e := range f.Edges {
		if e.Weight < minWeight {
			continue
		}
		c.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2))
	}
	for _, line := range f.Lines {
		for i := 1; i < len(line); i++ {
			c.Line(int(line[i-1].X), int(line[i-1].Y), int(line[i].X), int(line[i].Y))
		}
	}
	for _, level := range f.Contours {
		for _, s := range level {
			c.Line(int(s.X1), int(s.Y1), int(s.X2), int(s.Y2))
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
