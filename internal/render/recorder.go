package render

import (
	"image/color"

	"github.com/san-kum/pendulum/internal/vec"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpLine
	OpCircle
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpLine:
		return "line"
	case OpCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Op is one recorded primitive. A and B are the line endpoints; circles use
// A as the center and Size as the radius, lines use Size as the stroke width.
type Op struct {
	Kind  OpKind
	A, B  vec.Vec
	Size  float64
	Color color.RGBA
}

// Recorder keeps every primitive it receives, in order.
type Recorder struct {
	ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{ops: make([]Op, 0, 16)}
}

func (r *Recorder) Clear(c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) Line(a, b vec.Vec, width float64, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpLine, A: a, B: b, Size: width, Color: c})
}

func (r *Recorder) Circle(center vec.Vec, radius float64, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpCircle, A: center, Size: radius, Color: c})
}

func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset drops the recorded ops and keeps the backing array for the next
// frame.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Replay emits the recorded ops onto s.
func Replay(ops []Op, s Surface) {
	for _, op := range ops {
		switch op.Kind {
		case OpClear:
			s.Clear(op.Color)
		case OpLine:
			s.Line(op.A, op.B, op.Size, op.Color)
		case OpCircle:
			s.Circle(op.A, op.Size, op.Color)
		}
	}
}
