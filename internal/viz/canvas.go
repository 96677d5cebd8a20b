package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const blank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Bounds is the world rectangle mapped onto a canvas.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Expand grows b to include (x, y).
func (b *Bounds) Expand(x, y float64) {
	b.MinX, b.MaxX = math.Min(b.MinX, x), math.Max(b.MaxX, x)
	b.MinY, b.MaxY = math.Min(b.MinY, y), math.Max(b.MaxY, y)
}

// Pad widens degenerate extents and adds a relative margin.
func (b *Bounds) Pad(margin float64) {
	if b.MaxX-b.MinX < 1e-9 {
		b.MinX, b.MaxX = b.MinX-1, b.MaxX+1
	}
	if b.MaxY-b.MinY < 1e-9 {
		b.MinY, b.MaxY = b.MinY-1, b.MaxY+1
	}
	dx, dy := (b.MaxX-b.MinX)*margin, (b.MaxY-b.MinY)*margin
	b.MinX, b.MaxX = b.MinX-dx, b.MaxX+dx
	b.MinY, b.MaxY = b.MinY-dy, b.MaxY+dy
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	View          Bounds
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		View:   Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Project maps world coordinates into sub-pixels, y pointing up.
func (c *Canvas) Project(x, y float64) (int, int) {
	v := c.View
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	px := (x - v.MinX) / (v.MaxX - v.MinX) * w
	py := (v.MaxY - y) / (v.MaxY - v.MinY) * h
	return int(math.Round(px)), int(math.Round(py))
}

// Plot lights the dot nearest to world point (x, y).
func (c *Canvas) Plot(x, y float64) {
	c.Set(c.Project(x, y))
}

// Line draws a world-space segment.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	a, b := c.Project(x0, y0)
	p, q := c.Project(x1, y1)
	c.DrawLine(a, b, p, q)
}

// Marker draws a small cross at world point (x, y).
func (c *Canvas) Marker(x, y float64) {
	px, py := c.Project(x, y)
	for d := -2; d <= 2; d++ {
		c.Set(px+d, py)
		c.Set(px, py+d)
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a sub-pixel line with Bresenham's algorithm.
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
