package gallifrey

import (
	"math"
	"testing"
)

func TestCarryListAppend(t *testing.T) {
	l := DefaultLayout()
	c := NewCarryList(l)
	center := l.Center()

	p := PointOnCircle(center, l.Rings.Radius(1), 0.7)
	line := c.Append(p, 1)

	if line.Index != 0 || line.Born != 1 || line.Ring != 1 {
		t.Errorf("Append() = %+v, want index 0 born on ring 1", line)
	}
	if line.Start != p {
		t.Errorf("Start = %v, want %v", line.Start, p)
	}
	ratio := l.Rings.Radius(2) / l.Rings.Radius(1)
	if got, want := line.End.Dist(center), p.Dist(center)*ratio; math.Abs(got-want) > 1e-9 {
		t.Errorf("End is %v from center, want %v", got, want)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.At(1); ok {
		t.Error("At(1) reported a line that was never created")
	}
}

func TestAdvanceChains(t *testing.T) {
	l := DefaultLayout()
	center := l.Center()
	c := NewCarryList(l)
	for j, angle := range []float64{0.3, 1.9, 4} {
		c.Append(PointOnCircle(center, l.Rings.Radius(0), angle), 0)
		if c.Len() != j+1 {
			t.Fatalf("Len() = %d after %d appends", c.Len(), j+1)
		}
	}

	for ring := 1; ring < DigitCount; ring++ {
		before := c.Lines()
		c.Advance(ring)
		after := c.Lines()

		for j := range after {
			if after[j].Index != j {
				t.Errorf("ring %d: line at %d has index %d", ring, j, after[j].Index)
			}
			if after[j].Start != before[j].End {
				t.Errorf("ring %d line %d: start %v, want previous end %v", ring, j, after[j].Start, before[j].End)
			}
			if after[j].Ring != ring || after[j].Born != 0 {
				t.Errorf("ring %d line %d: ring %d born %d", ring, j, after[j].Ring, after[j].Born)
			}
			ratio := l.Rings.Radius(ring+1) / l.Rings.Radius(ring)
			if got, want := after[j].End.Dist(center), after[j].Start.Dist(center)*ratio; math.Abs(got-want) > 1e-9 {
				t.Errorf("ring %d line %d: end at %v from center, want %v", ring, j, got, want)
			}
		}
	}
}

func TestLinesIsCopy(t *testing.T) {
	l := DefaultLayout()
	c := NewCarryList(l)
	c.Append(PointOnCircle(l.Center(), l.Rings.Radius(0), 1), 0)

	lines := c.Lines()
	lines[0].Start = Point{}
	if got, _ := c.At(0); got.Start == (Point{}) {
		t.Error("mutating Lines() result changed the carry list")
	}
}
