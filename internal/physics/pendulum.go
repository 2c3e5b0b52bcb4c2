package physics

import (
	"math"

	"github.com/san-kum/pendulum/internal/render"
	"github.com/san-kum/pendulum/internal/vec"
)

const (
	DefaultAngle   = 1.0
	DefaultMass    = 1.0
	DefaultGravity = 0.5

	ArmWidth   = 3.0
	BallRadius = 30.0
)

var (
	ArmColor  = render.Green
	BallColor = render.Black
)

// Pendulum is a simple undamped pendulum advanced one explicit step per
// frame. Units are pixels and frames.
type Pendulum struct {
	Origin   vec.Vec
	Position vec.Vec

	Angle               float64
	AngularVelocity     float64
	AngularAcceleration float64

	Length  float64
	Mass    float64
	Gravity float64
}

// New places the pivot at (x, y). Position stays at the zero vector until
// the first Update. Length is not validated.
func New(x, y, length float64) *Pendulum {
	return &Pendulum{
		Origin:   vec.New(x, y),
		Position: vec.New(0, 0),
		Angle:    DefaultAngle,
		Length:   length,
		Mass:     DefaultMass,
		Gravity:  DefaultGravity,
	}
}

func (p *Pendulum) Update() {
	p.AngularAcceleration = -p.Gravity * math.Sin(p.Angle) / p.Length
	p.AngularVelocity += p.AngularAcceleration
	p.Angle += p.AngularVelocity

	p.Position.Set(p.Length*math.Sin(p.Angle), p.Length*math.Cos(p.Angle))
	p.Position.Add(p.Origin)
}

func (p *Pendulum) Draw(s render.Surface) {
	s.Line(p.Origin, p.Position, ArmWidth, ArmColor)
	s.Circle(p.Position, BallRadius, BallColor)
}

func (p *Pendulum) Energy() float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.Length * p.AngularVelocity
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(p.Angle))
	return ke + pe
}

func (p *Pendulum) Valid() bool {
	for _, v := range []float64{p.Angle, p.AngularVelocity, p.AngularAcceleration} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.Position.IsFinite()
}

type Sample struct {
	Angle               float64
	AngularVelocity     float64
	AngularAcceleration float64
	Position            vec.Vec
	Energy              float64
}

func (p *Pendulum) Snapshot() Sample {
	return Sample{
		Angle:               p.Angle,
		AngularVelocity:     p.AngularVelocity,
		AngularAcceleration: p.AngularAcceleration,
		Position:            p.Position,
		Energy:              p.Energy(),
	}
}
