package gallifrey

// RadialLine is a glyph line that spirals inward one ring per digit.
type RadialLine struct {
	// Index is the creation order within the frame.
	Index int
	Start Point
	End   Point
	// Born is the ring the line was created on; Ring is the ring it currently spans.
	Born int
	Ring int
}

// CarryList holds the lines of one frame in creation order. It is append-only;
// positions never change once assigned.
type CarryList struct {
	layout Layout
	lines  []RadialLine
}

// NewCarryList returns an empty list for layout.
func NewCarryList(layout Layout) *CarryList {
	return &CarryList{layout: layout}
}

// Len returns the number of lines created so far.
func (c *CarryList) Len() int { return len(c.lines) }

// At returns the line created j-th, if any.
func (c *CarryList) At(j int) (RadialLine, bool) {
	if j < 0 || j >= len(c.lines) {
		return RadialLine{}, false
	}
	return c.lines[j], true
}

// Lines returns a copy of all lines in creation order.
func (c *CarryList) Lines() []RadialLine {
	return append([]RadialLine(nil), c.lines...)
}

// Append creates a line from a point on ring to the matching point on ring+1.
func (c *CarryList) Append(p Point, ring int) RadialLine {
	line := RadialLine{
		Index: len(c.lines),
		Start: p,
		End:   ScaleTowardCenter(c.layout.Center(), p, c.layout.Rings.Radius(ring), c.layout.Rings.Radius(ring+1)),
		Born:  ring,
		Ring:  ring,
	}
	c.lines = append(c.lines, line)
	return line
}

// Advance moves every line onto ring: each new segment starts where the
// previous one ended and runs on to the same angle on ring+1.
func (c *CarryList) Advance(ring int) {
	center := c.layout.Center()
	from, to := c.layout.Rings.Radius(ring), c.layout.Rings.Radius(ring+1)
	for j := range c.lines {
		line := &c.lines[j]
		line.Start = line.End
		line.End = ScaleTowardCenter(center, line.End, from, to)
		line.Ring = ring
	}
}
