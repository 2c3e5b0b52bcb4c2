// Package term runs the frame loop in the terminal, drawing onto a Braille
// canvas inside a Bubble Tea program.
//
// Key bindings:
//
//	Space  - pause/resume
//	q      - quit
package term

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendulum/internal/logging"
	"github.com/san-kum/pendulum/internal/render"
	"github.com/san-kum/pendulum/internal/window"
)

const (
	cols            = 80
	rows            = 24
	historyCapacity = 240
)

// Telemetry is optionally implemented by handlers that expose one scalar per
// tracked object; the first value is graphed under the canvas.
type Telemetry interface {
	Telemetry() []float64
}

type Window struct {
	opts window.Options
	log  logging.Logger
}

func New(opts window.Options, log logging.Logger) (window.Window, error) {
	return &Window{opts: opts, log: log}, nil
}

func (w *Window) Run(ctx context.Context, h window.Handler) error {
	m := NewModel(h, w.opts)

	w.log.Info("window opened", "backend", "term", "cols", cols, "rows", rows)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		w.log.Info("window closed", "frames", fm.frames)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type TickMsg time.Time

type Model struct {
	h        window.Handler
	title    string
	interval time.Duration
	canvas   *render.Braille
	running  bool
	active   bool
	frames   int
	values   []float64
	history  []float64
}

func NewModel(h window.Handler, opts window.Options) Model {
	return Model{
		h:        h,
		title:    opts.Title,
		interval: time.Second / time.Duration(opts.FPS),
		canvas:   render.NewBraille(cols, rows, float64(opts.Width), float64(opts.Height)),
		running:  true,
		active:   true,
		history:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.active {
			m = m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step renders one frame. The canvas is shared between model copies, which
// is fine because Bubble Tea calls Update and View from one goroutine.
func (m Model) step() Model {
	m.active = m.h.OnDraw(m.canvas)
	m.frames++

	if t, ok := m.h.(Telemetry); ok {
		m.values = t.Telemetry()
		if len(m.values) > 0 {
			if len(m.history) >= historyCapacity {
				m.history = append(m.history[:0], m.history[1:]...)
			}
			m.history = append(m.history, m.values[0])
		}
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	status := statusRunning.Render("running")
	if !m.running {
		status = statusPaused.Render("paused")
	} else if !m.active {
		status = statusPaused.Render("stopped")
	}

	b.WriteString(titleStyle.Render(m.title) + "  " + status + "  " +
		labelStyle.Render("frame ") + valueStyle.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	b.WriteString(frameStyle.Render(strings.TrimRight(m.canvas.String(), "\n")) + "\n")

	if len(m.values) > 0 {
		parts := make([]string, len(m.values))
		for i, v := range m.values {
			parts[i] = labelStyle.Render(fmt.Sprintf("θ%d ", i)) + valueStyle.Render(fmt.Sprintf("%+.3f", v))
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(cols-10),
			asciigraph.Caption("θ0 (rad)"),
		)
		b.WriteString(graphStyle.Render(graph) + "\n")
	}

	b.WriteString(helpStyle.Render("space: pause • q: quit"))
	return b.String()
}
