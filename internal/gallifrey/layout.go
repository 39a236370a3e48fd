package gallifrey

// Layout fixes the geometry shared by every frame.
type Layout struct {
	Width, Height int
	Rings         Rings

	// GlyphWidth is the pen width for glyph lines and reduction circles.
	GlyphWidth float64
	FontSize   float64
	TextY      float64
}

// DefaultLayout returns the 800x600 reference face.
func DefaultLayout() Layout {
	return Layout{
		Width:      800,
		Height:     600,
		Rings:      DefaultRings(),
		GlyphWidth: 3,
		FontSize:   30,
		TextY:      40,
	}
}

// Center is the shared center point of all rings, using integer halves of the surface size.
func (l Layout) Center() Point {
	return Point{X: float64(l.Width / 2), Y: float64(l.Height / 2)}
}

// Validate reports whether the layout can be rendered.
func (l Layout) Validate() error {
	return l.Rings.Validate()
}
