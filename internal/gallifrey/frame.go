package gallifrey

// OpKind tells a Surface which primitive an Op draws.
type OpKind int

const (
	OpRing OpKind = iota
	OpCircle
	OpLine
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpRing:
		return "ring"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing command.
type Op struct {
	Kind OpKind
	// Ring is the ring index the primitive belongs to (-1 for text).
	Ring int

	// Center and Radius describe rings and reduction circles. For text,
	// Center is the top-center anchor.
	Center Point
	Radius float64

	Start, End Point

	// Line is the creation index of a glyph line, -1 otherwise.
	Line int

	Width float64
	Text  string
	Size  float64
}

// Surface is anything that can paint a frame.
type Surface interface {
	DrawCircle(center Point, radius, width float64)
	DrawLine(start, end Point, width float64)
	// DrawText draws text horizontally centered on anchor.X with its top at anchor.Y.
	DrawText(text string, anchor Point, size float64)
}

// Frame is everything painted for one tick, in paint order.
type Frame struct {
	Stamp string
	Ops   []Op

	Glyphs []Glyph
	// Lines is the final state of every glyph line.
	Lines []RadialLine
	// NewLines counts lines created on each ring.
	NewLines [DigitCount]int
	// Exhausted counts allocations that settled for a best-effort angle.
	Exhausted int

	// Err is set when glyphs were skipped; the rings and text are still present.
	Err error
}

// Replay paints the frame onto s in recorded order.
func (f Frame) Replay(s Surface) {
	for _, op := range f.Ops {
		switch op.Kind {
		case OpRing, OpCircle:
			s.DrawCircle(op.Center, op.Radius, op.Width)
		case OpLine:
			s.DrawLine(op.Start, op.End, op.Width)
		case OpText:
			s.DrawText(op.Text, op.Center, op.Size)
		}
	}
}

// Count returns the number of ops of kind.
func (f Frame) Count(kind OpKind) int {
	n := 0
	for _, op := range f.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// OnRing returns the ops of kind drawn for ring.
func (f Frame) OnRing(kind OpKind, ring int) []Op {
	var ops []Op
	for _, op := range f.Ops {
		if op.Kind == kind && op.Ring == ring {
			ops = append(ops, op)
		}
	}
	return ops
}
