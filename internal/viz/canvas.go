package viz

import (
	"math"
	"strings"
)

const brailleBlank = 0x2800

// Braille dot bits for a 2x4 cell, indexed [row][col].
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Drawing coordinates are in dots, so
// the drawable area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the drawable size in dots.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= pixelMap[y%4][x%2]
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm. Lines whose endpoints
// lie far outside the canvas are dropped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	w, h := c.Dots()
	limit := 8 * max(w, h)
	for _, v := range []int{x0, y0, x1, y1} {
		if absInt(v) > limit {
			return
		}
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// DrawRing draws an ellipse with the given radii in dots.
func (c *Canvas) DrawRing(cx, cy, rx, ry int) {
	if rx <= 0 && ry <= 0 {
		c.Set(cx, cy)
		return
	}
	segments := max(12, 2*(rx+ry))
	px, py := cx+rx, cy
	for i := 1; i <= segments; i++ {
		th := 2 * math.Pi * float64(i) / float64(segments)
		x := cx + int(math.Round(float64(rx)*math.Cos(th)))
		y := cy + int(math.Round(float64(ry)*math.Sin(th)))
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
