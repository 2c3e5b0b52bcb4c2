package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/pendulum/internal/vec"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

// maxDot bounds how far off-grid a point may land before it is dropped.
const maxDot = 1 << 16

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille is a monochrome Surface backed by a grid of Braille cells. Window
// coordinates are scaled so that a viewW x viewH window fills the grid.
type Braille struct {
	Width, Height int
	Grid          [][]rune

	sx, sy float64
}

func NewBraille(cols, rows int, viewW, viewH float64) *Braille {
	b := &Braille{
		Width:  cols,
		Height: rows,
		Grid:   make([][]rune, rows),
		sx:     1,
		sy:     1,
	}
	if viewW > 0 {
		b.sx = float64(cols*2) / viewW
	}
	if viewH > 0 {
		b.sy = float64(rows*4) / viewH
	}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
		}
	}
	return b
}

// Set lights the dot at (x, y) in dot coordinates. The grid is
// (Width*2) x (Height*4) dots.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= b.Width || row >= b.Height {
		return
	}

	b.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (b *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.Width || y/4 >= b.Height {
		return false
	}
	return b.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (b *Braille) Clear(color.RGBA) {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
		}
	}
}

// Line draws a one-dot line using Bresenham's algorithm; stroke width is not
// representable at this resolution.
func (b *Braille) Line(p, q vec.Vec, _ float64, _ color.RGBA) {
	x0, y0, ok0 := b.toDots(p)
	x1, y1, ok1 := b.toDots(q)
	if !ok0 || !ok1 {
		return
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
		b.Set(x0, y0)
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

// Circle fills a disc.
func (b *Braille) Circle(center vec.Vec, radius float64, _ color.RGBA) {
	cx, cy, ok := b.toDots(center)
	if !ok {
		return
	}
	rx := int(math.Round(radius * b.sx))
	ry := int(math.Round(radius * b.sy))
	if rx < 1 {
		rx = 1
	}
	if ry < 1 {
		ry = 1
	}

	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			nx := float64(dx) / float64(rx)
			ny := float64(dy) / float64(ry)
			if nx*nx+ny*ny <= 1 {
				b.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (b *Braille) toDots(p vec.Vec) (int, int, bool) {
	if !p.IsFinite() {
		return 0, 0, false
	}
	x := p.X * b.sx
	y := p.Y * b.sy
	if math.Abs(x) > maxDot || math.Abs(y) > maxDot {
		return 0, 0, false
	}
	return int(math.Round(x)), int(math.Round(y)), true
}

func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.Grid {
		sb.WriteString(string(row) + "\n")
	}
	return sb.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
