package gallifrey

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// StampLayout formats wall-clock time as 24-hour HH:MM:SS.
const StampLayout = "15:04:05"

// ErrMalformedTime is set on a frame whose stamp is not six digits once separators are removed.
var ErrMalformedTime = errors.New("gallifrey: malformed time stamp")

// Renderer turns a time into a Frame. It is not safe for concurrent use
// because the allocator's Source usually is not.
type Renderer struct {
	layout Layout
	alloc  *AngleAllocator
	logger *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for recoverable render problems.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer returns a renderer for layout drawing angles from alloc.
func NewRenderer(layout Layout, alloc *AngleAllocator, opts ...Option) *Renderer {
	r := &Renderer{layout: layout, alloc: alloc}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Layout returns the geometry the renderer draws with.
func (r *Renderer) Layout() Layout { return r.layout }

// Render draws the frame for now.
func (r *Renderer) Render(now time.Time) Frame {
	return r.RenderStamp(now.Format(StampLayout))
}

// RenderStamp draws the frame for an HH:MM:SS stamp. A malformed stamp still
// yields the rings and the text, with Frame.Err set.
func (r *Renderer) RenderStamp(stamp string) Frame {
	l := r.layout
	f := Frame{Stamp: stamp}

	for i := range RingCount {
		f.Ops = append(f.Ops, Op{
			Kind:   OpRing,
			Ring:   i,
			Center: l.Center(),
			Radius: l.Rings.Radius(i),
			Line:   -1,
			Width:  StrokeWidth(i),
		})
	}
	f.Ops = append(f.Ops, Op{
		Kind:   OpText,
		Ring:   -1,
		Center: Point{X: float64(l.Width / 2), Y: l.TextY},
		Line:   -1,
		Text:   stamp,
		Size:   l.FontSize,
	})

	digits, err := ParseStamp(stamp)
	if err != nil {
		r.logger.Warn("skipping glyphs", "stamp", stamp, "err", err)
		f.Err = err
		return f
	}

	picker := &framePicker{layout: l, alloc: r.alloc}
	planner := NewPlanner(l, picker)
	lines := NewCarryList(l)

	for i, digit := range digits {
		lines.Advance(i)

		g, err := planner.Plan(digit, i)
		if err != nil && !errors.Is(err, ErrAllocationExhausted) {
			f.Err = errors.Join(f.Err, err)
			continue
		}
		f.Glyphs = append(f.Glyphs, g)
		if g.Circle != nil {
			f.Ops = append(f.Ops, Op{
				Kind:   OpCircle,
				Ring:   i,
				Center: g.Circle.Center,
				Radius: g.Circle.Radius,
				Line:   -1,
				Width:  l.GlyphWidth,
			})
		}

		for j := range g.LineCount {
			line, ok := lines.At(j)
			if !ok {
				p, _ := picker.PickOnRing(i)
				line = lines.Append(p, i)
				f.NewLines[i]++
			}
			f.Ops = append(f.Ops, Op{
				Kind:  OpLine,
				Ring:  i,
				Start: line.Start,
				End:   line.End,
				Line:  line.Index,
				Width: l.GlyphWidth,
			})
		}
	}

	f.Lines = lines.Lines()
	f.Exhausted = picker.exhausted
	if f.Exhausted > 0 {
		r.logger.Debug("relaxed angle separation", "stamp", stamp, "allocations", f.Exhausted)
	}
	return f
}

// ParseStamp strips ':' separators and returns the six digits of stamp.
func ParseStamp(stamp string) ([]int, error) {
	raw := strings.ReplaceAll(stamp, ":", "")
	if len(raw) != DigitCount {
		return nil, fmt.Errorf("%w: %q has %d digits", ErrMalformedTime, stamp, len(raw))
	}
	digits := make([]int, DigitCount)
	for i := range DigitCount {
		c := raw[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q", ErrMalformedTime, stamp)
		}
		digits[i] = int(c - '0')
	}
	return digits, nil
}

// framePicker tracks the used-angle set of a single frame.
type framePicker struct {
	layout    Layout
	alloc     *AngleAllocator
	used      []float64
	exhausted int
}

func (p *framePicker) PickOnRing(ring int) (Point, error) {
	angle, err := p.alloc.Allocate(p.used)
	if err != nil {
		p.exhausted++
	}
	p.used = append(p.used, angle)
	return PointOnCircle(p.layout.Center(), p.layout.Rings.Radius(ring), angle), err
}
