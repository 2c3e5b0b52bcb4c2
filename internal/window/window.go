package window

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/pendulum/internal/logging"
	"github.com/san-kum/pendulum/internal/render"
)

var (
	ErrUnknownBackend = errors.New("window: unknown backend")
	ErrInvalidOptions = errors.New("window: invalid options")
	ErrCreate         = errors.New("window: could not create window")
)

// Handler is called once per frame with the surface for that frame. Returning
// false stops requesting redraws; the window stays up until closed.
type Handler interface {
	OnDraw(s render.Surface) bool
}

type HandlerFunc func(s render.Surface) bool

func (f HandlerFunc) OnDraw(s render.Surface) bool { return f(s) }

// Window runs a frame loop until the user closes it or ctx is canceled.
type Window interface {
	Run(ctx context.Context, h Handler) error
}

type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidOptions, o.FPS)
	}
	return nil
}

type Factory func(opts Options, log logging.Logger) (Window, error)

type Registry struct {
	backends map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Factory)}
}

func (r *Registry) Register(name string, f Factory) {
	r.backends[name] = f
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates a window on the named backend.
func (r *Registry) Open(name string, opts Options, log logging.Logger) (Window, error) {
	f, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownBackend, name, r.Names())
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return f(opts, logging.OrNop(log))
}
