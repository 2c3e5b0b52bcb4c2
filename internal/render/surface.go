package render

import (
	"image/color"

	"github.com/san-kum/pendulum/internal/vec"
)

// Surface is the drawing target a frame is emitted onto. Window backends and
// the headless sinks in this package implement it.
type Surface interface {
	Clear(c color.RGBA)
	Line(a, b vec.Vec, width float64, c color.RGBA)
	Circle(center vec.Vec, radius float64, c color.RGBA)
}

var (
	// Background is rgb(0.8, 0.9, 1.0).
	Background = color.RGBA{R: 204, G: 230, B: 255, A: 255}
	Green      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Discard is a Surface that drops everything.
var Discard Surface = discard{}

type discard struct{}

func (discard) Clear(color.RGBA)                          {}
func (discard) Line(vec.Vec, vec.Vec, float64, color.RGBA) {}
func (discard) Circle(vec.Vec, float64, color.RGBA)        {}
