package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravbox/internal/vec"
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

const blank = 0x2800

// Canvas is a braille pixel grid. Pixel coordinates are "sub-pixels": the
// canvas is (Width*2) x (Height*4) of them. Each cell keeps the color of the
// last pixel drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

// Size returns the canvas size in sub-pixels.
func (c *Canvas) Size() vec.Vec2 {
	return vec.New(float64(c.Width*2), float64(c.Height*4))
}

// Set lights the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// Line draws a line using Bresenham's algorithm
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA) {
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
		c.Set(x0, y0, col)
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

// FillCircle lights every sub-pixel whose center lies inside the circle.
// Circles smaller than a sub-pixel still light the one under their center.
func (c *Canvas) FillCircle(center vec.Vec2, radius float64, col color.RGBA) {
	if !center.IsFinite() || math.IsNaN(radius) {
		return
	}
	size := c.Size()
	if center.X+radius < 0 || center.Y+radius < 0 || center.X-radius > size.X || center.Y-radius > size.Y {
		return
	}

	c.Set(int(math.Floor(center.X)), int(math.Floor(center.Y)), col)

	x0 := int(math.Max(0, math.Floor(center.X-radius)))
	x1 := int(math.Min(size.X-1, math.Ceil(center.X+radius)))
	y0 := int(math.Max(0, math.Floor(center.Y-radius)))
	y1 := int(math.Min(size.Y-1, math.Ceil(center.Y+radius)))
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if vec.DistSq(vec.New(float64(x)+0.5, float64(y)+0.5), center) <= r2 {
				c.Set(x, y, col)
			}
		}
	}
}

// DrawLine draws between two sub-pixel points. Lines far off canvas are
// skipped rather than walked.
func (c *Canvas) DrawLine(a, b vec.Vec2, col color.RGBA) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	size := c.Size()
	limit := 4 * (size.X + size.Y)
	if math.Abs(a.X) > limit || math.Abs(a.Y) > limit || math.Abs(b.X) > limit || math.Abs(b.Y) > limit {
		return
	}
	c.Line(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), col)
}

// String renders the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid with each lit cell in its color.
func (c *Canvas) Render() string {
	var b strings.Builder
	styles := make(map[color.RGBA]lipgloss.Style)
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			col := c.Colors[i][j]
			st, ok := styles[col]
			if !ok {
				st = lipgloss.NewStyle().Foreground(Hex(col))
				styles[col] = st
			}
			b.WriteString(st.Render(string(r)))
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Hex converts an RGBA color to a lipgloss color.
func Hex(c color.RGBA) lipgloss.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color(cf.Hex())
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
