package vec

import "math"

// Vec is a 2D point or displacement in window coordinates (y grows down).
type Vec struct {
	X, Y float64
}

func New(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add translates v by other in place and returns v for chaining.
func (v *Vec) Add(other Vec) *Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v *Vec) Set(x, y float64) {
	v.X = x
	v.Y = y
}

func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
