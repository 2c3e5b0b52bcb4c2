package trace

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/pendulum/internal/physics"
)

var ErrNoFrames = errors.New("trace: frame count must be positive")

// Sample is one pendulum at the end of one frame.
type Sample struct {
	Frame    int
	Pendulum int
	physics.Sample
}

type Result struct {
	Frames    int
	Pendulums int
	Samples   []Sample
	Metrics   map[string]float64
}

// Series returns the samples of one pendulum in frame order.
func (r *Result) Series(pendulum int) []Sample {
	out := make([]Sample, 0, r.Frames)
	for _, s := range r.Samples {
		if s.Pendulum == pendulum {
			out = append(out, s)
		}
	}
	return out
}

// Scene is the part of scene.Scene that recording needs.
type Scene interface {
	Pendulums() []*physics.Pendulum
	Frame() int
	Tick()
}

// Record ticks s for the given number of frames without drawing and samples
// every pendulum after each frame. A canceled run returns what was recorded
// so far together with the context error.
func Record(ctx context.Context, s Scene, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoFrames, frames)
	}

	ps := s.Pendulums()
	result := &Result{
		Pendulums: len(ps),
		Samples:   make([]Sample, 0, frames*len(ps)),
		Metrics:   make(map[string]float64),
	}

	var err error
	for n := 0; n < frames; n++ {
		if err = ctx.Err(); err != nil {
			break
		}

		s.Tick()
		frame := s.Frame()
		for i, p := range ps {
			result.Samples = append(result.Samples, Sample{Frame: frame, Pendulum: i, Sample: p.Snapshot()})
		}
		result.Frames++
	}

	result.Metrics["frames"] = float64(result.Frames)
	for i := range ps {
		for name, v := range seriesMetrics(result.Series(i)) {
			result.Metrics[fmt.Sprintf("%s_%d", name, i)] = v
		}
	}

	return result, err
}

func seriesMetrics(series []Sample) map[string]float64 {
	m := map[string]float64{
		"energy_drift": 0,
		"max_angle":    0,
	}
	if len(series) == 0 {
		return m
	}

	initial := series[0].Energy
	final := series[len(series)-1].Energy
	if initial != 0 {
		m["energy_drift"] = math.Abs(final-initial) / math.Abs(initial)
	}

	maxAngle := 0.0
	for _, s := range series {
		maxAngle = math.Max(maxAngle, math.Abs(s.Angle))
	}
	m["max_angle"] = maxAngle
	return m
}
