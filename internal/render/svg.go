package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/pendulum/internal/vec"
)

// SVG accumulates primitives into a single SVG document. A Clear drops
// whatever was drawn before it, so the output is always the latest frame.
type SVG struct {
	Width, Height int
	body          strings.Builder
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height}
}

func (s *SVG) Clear(c color.RGBA) {
	s.body.Reset()
	s.body.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, hex(c)))
}

func (s *SVG) Line(a, b vec.Vec, width float64, c color.RGBA) {
	s.body.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, a.X, a.Y, b.X, b.Y, hex(c), width))
}

func (s *SVG) Circle(center vec.Vec, radius float64, c color.RGBA) {
	s.body.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, center.X, center.Y, radius, hex(c)))
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.Width, s.Height, s.Width, s.Height))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
