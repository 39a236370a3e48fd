package game

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

// painter replays frames onto an ebiten image.
type painter struct {
	dst    *ebiten.Image
	source *text.GoTextFaceSource
}

func newFaceSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return src, nil
}

func (p *painter) DrawCircle(c gallifrey.Point, radius, width float64) {
	vector.StrokeCircle(p.dst, f32(c.X), f32(c.Y), f32(math.Abs(radius)), f32(width), ink, true)
}

func (p *painter) DrawLine(a, b gallifrey.Point, width float64) {
	vector.StrokeLine(p.dst, f32(a.X), f32(a.Y), f32(b.X), f32(b.Y), f32(width), ink, true)
}

func (p *painter) DrawText(s string, anchor gallifrey.Point, size float64) {
	face := &text.GoTextFace{Source: p.source, Size: size}
	op := &text.DrawOptions{}
	op.GeoM.Translate(anchor.X, anchor.Y)
	op.ColorScale.ScaleWithColor(ink)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(p.dst, s, face, op)
}
