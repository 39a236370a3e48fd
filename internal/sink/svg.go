package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

// SVG is a Surface that accumulates SVG elements.
type SVG struct {
	buf  bytes.Buffer
	ink  string
	font string
}

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithInk sets the stroke and text colour.
func WithInk(c string) SVGOption { return func(s *SVG) { s.ink = c } }

// WithFont sets the font-family of the time text.
func WithFont(f string) SVGOption { return func(s *SVG) { s.font = f } }

// NewSVG returns an empty surface.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{ink: "black", font: "sans-serif"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) DrawCircle(c gallifrey.Point, radius, width float64) {
	fmt.Fprintf(&s.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		c.X, c.Y, math.Abs(radius), s.ink, width)
}

func (s *SVG) DrawLine(a, b gallifrey.Point, width float64) {
	fmt.Fprintf(&s.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		a.X, a.Y, b.X, b.Y, s.ink, width)
}

func (s *SVG) DrawText(text string, anchor gallifrey.Point, size float64) {
	fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" text-anchor="middle" dominant-baseline="hanging" fill="%s">%s</text>`+"\n",
		anchor.X, anchor.Y, s.font, size, s.ink, html.EscapeString(text))
}

// Document wraps the accumulated elements in an svg root of the given size.
func (s *SVG) Document(width, height int) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&out, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")
	out.Write(s.buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

// RenderSVG paints f into a standalone SVG document.
func RenderSVG(f gallifrey.Frame, width, height int, opts ...SVGOption) []byte {
	s := NewSVG(opts...)
	f.Replay(s)
	return s.Document(width, height)
}
