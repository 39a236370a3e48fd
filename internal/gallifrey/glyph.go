package gallifrey

import (
	"errors"
	"fmt"
	"math"
)

// ErrDigitRange is returned for digits outside 0..9.
var ErrDigitRange = errors.New("gallifrey: digit out of range")

// ReductionCircle stands for five units of a digit, drawn between two rings.
type ReductionCircle struct {
	Center Point
	Radius float64
}

// Glyph is the decoration plan for one digit on its ring.
type Glyph struct {
	Digit     int
	Ring      int
	LineCount int
	Circle    *ReductionCircle
}

// Units returns the number of drawable units, counting the circle as one.
func (g Glyph) Units() int {
	if g.Circle != nil {
		return g.LineCount + 1
	}
	return g.LineCount
}

// PointPicker hands out points on a ring at angles not yet used in the frame.
type PointPicker interface {
	PickOnRing(ring int) (Point, error)
}

// Planner decides the lines and reduction circle for each digit.
type Planner struct {
	layout Layout
	picker PointPicker
}

// NewPlanner returns a planner for layout that draws support points from picker.
func NewPlanner(layout Layout, picker PointPicker) *Planner {
	return &Planner{layout: layout, picker: picker}
}

// Plan returns the glyph for digit on ring. Digits above five become one
// reduction circle plus digit-5 lines; the rest are digit lines.
//
// An ErrAllocationExhausted from the picker is passed through alongside a
// complete glyph.
func (p *Planner) Plan(digit, ring int) (Glyph, error) {
	if digit < 0 || digit > 9 {
		return Glyph{}, fmt.Errorf("%w: %d", ErrDigitRange, digit)
	}
	if ring < 0 || ring >= DigitCount {
		return Glyph{}, fmt.Errorf("%w: %d", ErrRingRange, ring)
	}

	g := Glyph{Digit: digit, Ring: ring, LineCount: digit}
	if digit <= 5 {
		return g, nil
	}

	support, err := p.picker.PickOnRing(ring)
	if err != nil && !errors.Is(err, ErrAllocationExhausted) {
		return Glyph{}, err
	}
	g.Circle = reductionCircle(p.layout, support, ring)
	g.LineCount = digit - 5
	return g, err
}

// reductionCircle packs a circle between ring and ring+1, touching both,
// on the ray through support.
func reductionCircle(l Layout, support Point, ring int) *ReductionCircle {
	cur, next := l.Rings.Radius(ring), l.Rings.Radius(ring+1)
	return &ReductionCircle{
		Center: ScaleBy(l.Center(), support, (1+next/cur)/2),
		Radius: math.Abs(next-cur) / 2,
	}
}
