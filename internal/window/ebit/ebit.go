// Package ebit runs the frame loop on ebiten.
package ebit

import (
	"context"
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/pendulum/internal/logging"
	"github.com/san-kum/pendulum/internal/render"
	"github.com/san-kum/pendulum/internal/vec"
	"github.com/san-kum/pendulum/internal/window"
)

type Window struct {
	opts window.Options
	log  logging.Logger
}

func New(opts window.Options, log logging.Logger) (window.Window, error) {
	return &Window{opts: opts, log: log}, nil
}

func (w *Window) Run(ctx context.Context, h window.Handler) error {
	ebiten.SetWindowSize(w.opts.Width, w.opts.Height)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetTPS(w.opts.FPS)

	g := &game{
		ctx:    ctx,
		h:      h,
		rec:    render.NewRecorder(),
		width:  w.opts.Width,
		height: w.opts.Height,
		active: true,
	}

	w.log.Info("window opened", "backend", "ebiten", "width", w.opts.Width, "height", w.opts.Height)
	err := ebiten.RunGame(g)
	w.log.Info("window closed", "frames", g.frames)

	if errors.Is(err, errCanceled) {
		return ctx.Err()
	}
	return err
}

var errCanceled = errors.New("ebit: context canceled")

// game steps the handler in Update, once per tick, and replays the recorded
// frame in Draw, which ebiten may call at a different rate.
type game struct {
	ctx           context.Context
	h             window.Handler
	rec           *render.Recorder
	width, height int
	active        bool
	frames        int
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return errCanceled
	}
	if !g.active {
		return nil
	}
	g.rec.Reset()
	g.active = g.h.OnDraw(g.rec)
	g.frames++
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	render.Replay(g.rec.Ops(), &surface{dst: screen})
}

func (g *game) Layout(int, int) (int, int) {
	return g.width, g.height
}

type surface struct {
	dst *ebiten.Image
}

func (s *surface) Clear(c color.RGBA) {
	s.dst.Fill(c)
}

func (s *surface) Line(a, b vec.Vec, width float64, c color.RGBA) {
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

func (s *surface) Circle(center vec.Vec, radius float64, c color.RGBA) {
	vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), c, true)
}
