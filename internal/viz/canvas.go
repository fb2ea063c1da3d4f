package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Layers order what a cell is colored as when several things share it;
// the highest layer drawn into a cell wins.
const (
	LayerNone uint8 = iota
	LayerSkeleton
	LayerTangent
	LayerCurve
	LayerPoint
	LayerPointer
	numLayers
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Layer         [][]uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Layer:  make([][]uint8, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Layer[i] = make([]uint8, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in braille dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a dot at (x, y) in sub-pixel coordinates on the given layer.
func (c *Canvas) Set(x, y int, layer uint8) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if layer > c.Layer[row][col] {
		c.Layer[row][col] = layer
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Layer[i][j] = LayerNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, layer uint8) {
	c.walk(x0, y0, x1, y1, func(x, y, _ int) { c.Set(x, y, layer) })
}

// DrawDashed draws dash dots on, dash dots off.
func (c *Canvas) DrawDashed(x0, y0, x1, y1, dash int, layer uint8) {
	if dash < 1 {
		dash = 1
	}
	c.walk(x0, y0, x1, y1, func(x, y, n int) {
		if (n/dash)%2 == 0 {
			c.Set(x, y, layer)
		}
	})
}

// DrawDot fills a (2r+1)-dot square centred on (x, y).
func (c *Canvas) DrawDot(x, y, r int, layer uint8) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy, layer)
		}
	}
}

func (c *Canvas) walk(x0, y0, x1, y1 int, fn func(x, y, n int)) {
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

	for n := 0; ; n++ {
		fn(x0, y0, n)
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

// Render colors each run of cells by its layer style. Cells on LayerNone
// are written unstyled.
func (c *Canvas) Render(styles [numLayers]lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Layer[row][col] == c.Layer[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if layer := c.Layer[row][start]; layer == LayerNone {
				b.WriteString(run)
			} else {
				b.WriteString(styles[layer].Render(run))
			}
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
