package gallifrey

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestRenderer(seed uint64, opts ...Option) *Renderer {
	alloc := NewAngleAllocator(rand.New(rand.NewPCG(seed, 0x5eed)), DefaultMinSeparation, DefaultMaxAttempts)
	return NewRenderer(DefaultLayout(), alloc, opts...)
}

func TestRenderMidnight(t *testing.T) {
	f := newTestRenderer(1).RenderStamp("00:00:00")

	if f.Err != nil {
		t.Fatalf("Err = %v", f.Err)
	}
	if got := f.Count(OpRing); got != RingCount {
		t.Errorf("rings = %d, want %d", got, RingCount)
	}
	if got := f.Count(OpText); got != 1 {
		t.Errorf("texts = %d, want 1", got)
	}
	if f.Count(OpLine) != 0 || f.Count(OpCircle) != 0 {
		t.Errorf("got %d lines and %d circles, want none", f.Count(OpLine), f.Count(OpCircle))
	}
	if len(f.Ops) != RingCount+1 {
		t.Errorf("ops = %d, want %d", len(f.Ops), RingCount+1)
	}
	if f.Ops[RingCount].Text != "00:00:00" {
		t.Errorf("text = %q", f.Ops[RingCount].Text)
	}
}

func TestRenderRingStrokes(t *testing.T) {
	l := DefaultLayout()
	f := newTestRenderer(2).RenderStamp("12:34:56")
	for i := 0; i < RingCount; i++ {
		op := f.Ops[i]
		if op.Kind != OpRing || op.Ring != i {
			t.Fatalf("op %d = %v ring %d, want ring %d", i, op.Kind, op.Ring, i)
		}
		if op.Radius != l.Rings.Radius(i) || op.Width != StrokeWidth(i) || op.Center != l.Center() {
			t.Errorf("ring %d = %+v", i, op)
		}
	}
}

func TestRenderCarriesLines(t *testing.T) {
	tests := []struct {
		stamp    string
		lines    [DigitCount]int
		circles  [DigitCount]int
		newLines [DigitCount]int
	}{
		{
			stamp:    "09:59:59",
			lines:    [DigitCount]int{0, 4, 5, 4, 5, 4},
			circles:  [DigitCount]int{0, 1, 0, 1, 0, 1},
			newLines: [DigitCount]int{0, 4, 1, 0, 0, 0},
		},
		{
			stamp:    "23:41:07",
			lines:    [DigitCount]int{2, 3, 4, 1, 0, 2},
			circles:  [DigitCount]int{0, 0, 0, 0, 0, 1},
			newLines: [DigitCount]int{2, 1, 1, 0, 0, 0},
		},
		{
			stamp:    "18:06:30",
			lines:    [DigitCount]int{1, 3, 0, 1, 3, 0},
			circles:  [DigitCount]int{0, 1, 0, 1, 0, 0},
			newLines: [DigitCount]int{1, 2, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.stamp, func(t *testing.T) {
			f := newTestRenderer(3).RenderStamp(tt.stamp)
			if f.Err != nil {
				t.Fatalf("Err = %v", f.Err)
			}

			total := 0
			for ring := 0; ring < DigitCount; ring++ {
				if got := len(f.OnRing(OpLine, ring)); got != tt.lines[ring] {
					t.Errorf("ring %d: %d lines, want %d", ring, got, tt.lines[ring])
				}
				if got := len(f.OnRing(OpCircle, ring)); got != tt.circles[ring] {
					t.Errorf("ring %d: %d circles, want %d", ring, got, tt.circles[ring])
				}
				if f.NewLines[ring] != tt.newLines[ring] {
					t.Errorf("ring %d: %d new lines, want %d", ring, f.NewLines[ring], tt.newLines[ring])
				}
				total += tt.newLines[ring]
			}
			if len(f.Lines) != total {
				t.Errorf("carried %d lines, want %d", len(f.Lines), total)
			}
		})
	}
}

func TestRenderLineChaining(t *testing.T) {
	f := newTestRenderer(4).RenderStamp("09:59:59")

	// Index j drawn on ring k at position j among that ring's lines.
	for ring := 1; ring < DigitCount; ring++ {
		prev := f.OnRing(OpLine, ring-1)
		cur := f.OnRing(OpLine, ring)
		for j, op := range cur {
			if op.Line != j {
				t.Errorf("ring %d position %d has line %d", ring, j, op.Line)
			}
			if j < len(prev) && op.Start != prev[j].End {
				t.Errorf("ring %d line %d: start %v, want previous end %v", ring, j, op.Start, prev[j].End)
			}
		}
	}
}

func TestRenderMalformed(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	r := newTestRenderer(5, WithLogger(logger))

	for _, stamp := range []string{"1:2:3", "12:3a:56", "", "12:34:567"} {
		t.Run(stamp, func(t *testing.T) {
			f := r.RenderStamp(stamp)
			if !errors.Is(f.Err, ErrMalformedTime) {
				t.Fatalf("Err = %v, want ErrMalformedTime", f.Err)
			}
			if f.Count(OpRing) != RingCount || f.Count(OpText) != 1 {
				t.Errorf("background missing: %d rings, %d texts", f.Count(OpRing), f.Count(OpText))
			}
			if f.Count(OpLine)+f.Count(OpCircle) != 0 {
				t.Error("glyphs drawn for a malformed stamp")
			}
		})
	}
	if !strings.Contains(buf.String(), "skipping glyphs") {
		t.Errorf("log output %q lacks warning", buf.String())
	}
}

func TestRenderFormatsTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	f := newTestRenderer(6).Render(now)
	if f.Stamp != "09:05:07" {
		t.Errorf("Stamp = %q, want 09:05:07", f.Stamp)
	}
}

func TestParseStamp(t *testing.T) {
	got, err := ParseStamp("09:59:58")
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 9, 5, 9, 5, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("digit %d = %d, want %d", i, got[i], want[i])
		}
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) DrawCircle(Point, float64, float64) { r.calls = append(r.calls, "circle") }
func (r *recorder) DrawLine(Point, Point, float64)     { r.calls = append(r.calls, "line") }
func (r *recorder) DrawText(string, Point, float64)    { r.calls = append(r.calls, "text") }

func TestReplayOrder(t *testing.T) {
	f := newTestRenderer(7).RenderStamp("00:00:06")
	var rec recorder
	f.Replay(&rec)

	want := []string{"circle", "circle", "circle", "circle", "circle", "circle", "circle", "text", "circle", "line"}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}
