package sink

import (
	"bytes"
	"context"
	"image/png"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

func testFrame(t *testing.T, stamp string) (gallifrey.Frame, gallifrey.Layout) {
	t.Helper()
	l := gallifrey.DefaultLayout()
	alloc := gallifrey.NewAngleAllocator(rand.New(rand.NewPCG(11, 13)), gallifrey.DefaultMinSeparation, 0)
	return gallifrey.NewRenderer(l, alloc).RenderStamp(stamp), l
}

func TestRenderSVG(t *testing.T) {
	f, l := testFrame(t, "09:59:59")
	out := string(RenderSVG(f, l.Width, l.Height))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 600"`) {
		t.Errorf("unexpected header: %.80s", out)
	}
	if got, want := strings.Count(out, "<circle"), f.Count(gallifrey.OpRing)+f.Count(gallifrey.OpCircle); got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
	if got, want := strings.Count(out, "<line"), f.Count(gallifrey.OpLine); got != want {
		t.Errorf("lines = %d, want %d", got, want)
	}
	if !strings.Contains(out, ">09:59:59</text>") {
		t.Error("time text missing")
	}
	if strings.Contains(out, `r="-`) {
		t.Error("negative radius emitted")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestSVGOptions(t *testing.T) {
	s := NewSVG(WithInk("#123456"), WithFont("monospace"))
	s.DrawText("a<b", gallifrey.Point{X: 1, Y: 2}, 12)
	out := string(s.Document(10, 10))
	if !strings.Contains(out, `fill="#123456"`) || !strings.Contains(out, `font-family="monospace"`) {
		t.Errorf("options not applied: %s", out)
	}
	if !strings.Contains(out, "a&lt;b") {
		t.Errorf("text not escaped: %s", out)
	}
}

func TestRenderPNG(t *testing.T) {
	f, l := testFrame(t, "12:34:56")
	data, err := RenderPNG(f, l.Width, l.Height)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != l.Width || b.Dy() != l.Height {
		t.Errorf("bounds = %v, want %dx%d", b, l.Width, l.Height)
	}

	// The outer ring passes through (600, 300); the corner stays blank.
	if r, _, _, _ := img.At(599, 300).RGBA(); r > 0x8000 {
		t.Errorf("outer ring not inked at (599, 300): r=%#x", r)
	}
	if r, g, b, _ := img.At(5, 595).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("corner not white: %x %x %x", r, g, b)
	}
}

func TestGridDraw(t *testing.T) {
	g := NewGrid(80, 30, 800, 600, 2)
	if cols, rows := g.Size(); cols != 80 || rows != 30 {
		t.Fatalf("Size() = %d, %d", cols, rows)
	}

	g.DrawLine(gallifrey.Point{X: 0, Y: 300}, gallifrey.Point{X: 799, Y: 300}, 3)
	row := -1
	for y := 0; y < 30; y++ {
		if g.Rune(40, y) == '*' {
			row = y
		}
	}
	if row < 0 {
		t.Fatal("horizontal line not plotted")
	}
	for x := 0; x < 80; x++ {
		if g.Rune(x, row) != '*' {
			t.Errorf("gap at column %d", x)
		}
	}
	if g.Rune(-1, 0) != ' ' || g.Rune(80, 0) != ' ' {
		t.Error("out of range cells not blank")
	}
}

func TestGridText(t *testing.T) {
	g := NewGrid(80, 30, 800, 600, 2)
	g.DrawText("12:00:00", gallifrey.Point{X: 400, Y: 40}, 30)
	if !strings.Contains(g.String(), "12:00:00") {
		t.Errorf("text missing from grid:\n%s", g.String())
	}
}

func TestGridCircleRunes(t *testing.T) {
	f, l := testFrame(t, "00:00:00")
	g := NewGrid(100, 40, l.Width, l.Height, 2)
	f.Replay(g)
	out := g.String()
	if !strings.Contains(out, "#") || !strings.Contains(out, ".") {
		t.Errorf("expected thin and thick ring runes:\n%s", out)
	}
	if strings.Contains(out, "*") {
		t.Errorf("glyph runes drawn for midnight:\n%s", out)
	}
}

func TestTTYRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 40)

	l := gallifrey.DefaultLayout()
	alloc := gallifrey.NewAngleAllocator(rand.New(rand.NewPCG(1, 1)), gallifrey.DefaultMinSeparation, 0)
	tty := &TTY{
		Screen:   screen,
		Renderer: gallifrey.NewRenderer(l, alloc),
		Aspect:   2,
		Period:   time.Hour,
		Now:      func() time.Time { return time.Date(2024, 1, 1, 10, 20, 30, 0, time.UTC) },
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tty.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var row strings.Builder
	found := false
	for y := 0; y < 40 && !found; y++ {
		row.Reset()
		for x := 0; x < 100; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			row.WriteRune(r)
		}
		found = strings.Contains(row.String(), "10:20:30")
	}
	if !found {
		t.Error("time text not on screen")
	}
}
