package scene

import (
	"context"
	"image/color"

	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/logging"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/render"
)

// Scene owns a fixed, ordered set of pendulums and renders one frame per
// OnDraw call. It is not safe for concurrent use; window backends call it
// from a single loop.
type Scene struct {
	Background color.RGBA

	pendulums []*physics.Pendulum
	frame     int
	reported  []bool
	log       logging.Logger
}

func New(pendulums ...*physics.Pendulum) *Scene {
	return &Scene{
		Background: render.Background,
		pendulums:  pendulums,
		reported:   make([]bool, len(pendulums)),
		log:        logging.Nop,
	}
}

// FromConfig builds one pendulum per configured entry, in order.
func FromConfig(cfg *config.Config) *Scene {
	ps := make([]*physics.Pendulum, 0, len(cfg.Pendulums))
	for _, pc := range cfg.Pendulums {
		ps = append(ps, physics.New(pc.X, pc.Y, pc.Length))
	}
	return New(ps...)
}

func (s *Scene) SetLogger(l logging.Logger) {
	s.log = logging.OrNop(l)
}

func (s *Scene) Pendulums() []*physics.Pendulum { return s.pendulums }
func (s *Scene) Frame() int                     { return s.frame }

// Telemetry reports the current angle of each pendulum.
func (s *Scene) Telemetry() []float64 {
	out := make([]float64, len(s.pendulums))
	for i, p := range s.pendulums {
		out[i] = p.Angle
	}
	return out
}

// OnDraw clears the surface, updates and draws every pendulum in order, and
// always asks for another frame.
func (s *Scene) OnDraw(surface render.Surface) bool {
	surface.Clear(s.Background)
	for i, p := range s.pendulums {
		p.Update()
		s.check(i, p)
		p.Draw(surface)
	}
	s.frame++
	return true
}

// Tick advances every pendulum one frame without drawing.
func (s *Scene) Tick() {
	for i, p := range s.pendulums {
		p.Update()
		s.check(i, p)
	}
	s.frame++
}

// check reports a pendulum the first time its state goes non-finite. The
// pendulum keeps being updated and drawn afterwards.
func (s *Scene) check(i int, p *physics.Pendulum) {
	if s.reported[i] || p.Valid() {
		return
	}
	s.reported[i] = true
	s.log.Warn("pendulum state is no longer finite",
		"index", i,
		"frame", s.frame,
		"length", p.Length,
		"angle", p.Angle,
	)
}

// Run drives OnDraw headless for up to frames frames, stopping early when
// ctx is canceled or observe returns false. observe may be nil; a nil
// surface draws nowhere.
func (s *Scene) Run(ctx context.Context, frames int, surface render.Surface, observe func(frame int) bool) error {
	if surface == nil {
		surface = render.Discard
	}
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.OnDraw(surface)

		if observe != nil && !observe(s.frame) {
			return nil
		}
	}
	return nil
}
