package viz

import (
	"strings"
)

// Braille patterns pack 2x4 sub-pixels per terminal cell, Unicode offset
// 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille sub-pixel canvas of Width x Height terminal cells,
// i.e. (Width*2) x (Height*4) addressable pixels.
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
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set turns on the sub-pixel at (x, y). Out-of-range coordinates are
// ignored so branch polylines can run off the frame.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a sub-pixel line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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

// DrawSeries draws y(x) sampled on a uniform x grid as a polyline in data
// coordinates, mapped onto the full sub-pixel area with the given value
// range.
func (c *Canvas) DrawSeries(values []float64, lo, hi float64) {
	if len(values) < 2 || hi <= lo {
		return
	}
	pw := c.Width * 2
	ph := c.Height * 4

	px := func(i int) int {
		return i * (pw - 1) / (len(values) - 1)
	}
	py := func(v float64) int {
		return (ph - 1) - int((v-lo)/(hi-lo)*float64(ph-1))
	}

	for i := 1; i < len(values); i++ {
		c.DrawLine(px(i-1), py(values[i-1]), px(i), py(values[i]))
	}
}

// DrawDots plots single sub-pixels instead of a connected line; used for
// the bare (uncoupled) modes so they read as dashed against the branches.
func (c *Canvas) DrawDots(values []float64, lo, hi float64, stride int) {
	if len(values) < 2 || hi <= lo || stride < 1 {
		return
	}
	pw := c.Width * 2
	ph := c.Height * 4
	for i := 0; i < len(values); i += stride {
		x := i * (pw - 1) / (len(values) - 1)
		y := (ph - 1) - int((values[i]-lo)/(hi-lo)*float64(ph-1))
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
