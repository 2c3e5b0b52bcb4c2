// Package rayl runs the frame loop in a raylib window.
package rayl

import (
	"context"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

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

// Run opens the window and blocks until it is closed or ctx is canceled.
// Each frame is recorded from the handler and then replayed onto raylib, so
// once the handler stops requesting frames the last one stays on screen.
func (w *Window) Run(ctx context.Context, h window.Handler) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.opts.Width), int32(w.opts.Height), w.opts.Title)
	if !rl.IsWindowReady() {
		return window.ErrCreate
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(w.opts.FPS))
	w.log.Info("window opened", "backend", "raylib", "width", w.opts.Width, "height", w.opts.Height)

	rec := render.NewRecorder()
	active := true
	frames := 0

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if active {
			rec.Reset()
			active = h.OnDraw(rec)
			frames++
			if !active {
				w.log.Debug("handler stopped requesting frames", "frame", frames)
			}
		}

		rl.BeginDrawing()
		render.Replay(rec.Ops(), surface{})
		rl.EndDrawing()
	}

	w.log.Info("window closed", "frames", frames)
	return nil
}

type surface struct{}

func (surface) Clear(c color.RGBA) {
	rl.ClearBackground(c)
}

func (surface) Line(a, b vec.Vec, width float64, c color.RGBA) {
	rl.DrawLineEx(toVector2(a), toVector2(b), float32(width), c)
}

func (surface) Circle(center vec.Vec, radius float64, c color.RGBA) {
	rl.DrawCircleV(toVector2(center), float32(radius), c)
}

func toVector2(v vec.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}
