package sink

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

var (
	regularOnce sync.Once
	regular     *truetype.Font
	regularErr  error
)

func goRegular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// PNG is a Surface backed by a gg raster context.
type PNG struct {
	dc    *gg.Context
	faces map[float64]font.Face
	err   error
}

// NewPNG returns a white canvas of the given size with black ink.
func NewPNG(width, height int) *PNG {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	return &PNG{dc: dc, faces: map[float64]font.Face{}}
}

func (p *PNG) DrawCircle(c gallifrey.Point, radius, width float64) {
	p.dc.SetLineWidth(width)
	p.dc.DrawCircle(c.X, c.Y, math.Abs(radius))
	p.dc.Stroke()
}

func (p *PNG) DrawLine(a, b gallifrey.Point, width float64) {
	p.dc.SetLineWidth(width)
	p.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	p.dc.Stroke()
}

func (p *PNG) DrawText(text string, anchor gallifrey.Point, size float64) {
	face, err := p.face(size)
	if err != nil {
		p.err = err
		return
	}
	p.dc.SetFontFace(face)
	p.dc.DrawStringAnchored(text, anchor.X, anchor.Y, 0.5, 1)
}

func (p *PNG) face(size float64) (font.Face, error) {
	if f, ok := p.faces[size]; ok {
		return f, nil
	}
	ttf, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size})
	p.faces[size] = f
	return f, nil
}

// Encode returns the canvas as PNG bytes.
func (p *PNG) Encode() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG paints f onto a fresh canvas and encodes it.
func RenderPNG(f gallifrey.Frame, width, height int) ([]byte, error) {
	p := NewPNG(width, height)
	f.Replay(p)
	return p.Encode()
}
