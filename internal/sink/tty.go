package sink

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

// Grid rasterizes a frame into terminal cells. Surface coordinates are scaled
// uniformly so the whole face fits, with cells aspect times taller than wide.
type Grid struct {
	cols, rows int
	cells      []rune

	unitX, unitY float64 // surface units per cell
	offX, offY   float64 // cell offset that centers the face
}

// NewGrid returns an empty grid of cols x rows cells for a width x height surface.
func NewGrid(cols, rows, width, height int, aspect float64) *Grid {
	cols, rows = max(cols, 1), max(rows, 1)
	unit := math.Max(float64(width)/float64(cols), float64(height)/(float64(rows)*aspect))
	g := &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]rune, cols*rows),
		unitX: unit,
		unitY: unit * aspect,
	}
	g.offX = (float64(cols) - float64(width)/g.unitX) / 2
	g.offY = (float64(rows) - float64(height)/g.unitY) / 2
	for i := range g.cells {
		g.cells[i] = ' '
	}
	return g
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// Rune returns the rune at cell (x, y), or a space outside the grid.
func (g *Grid) Rune(x, y int) rune {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return ' '
	}
	return g.cells[y*g.cols+x]
}

func (g *Grid) cell(p gallifrey.Point) (int, int) {
	return int(math.Floor(p.X/g.unitX + g.offX)), int(math.Floor(p.Y/g.unitY + g.offY))
}

func (g *Grid) plot(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y*g.cols+x] = r
}

// pen picks a rune by stroke weight.
func pen(width float64) rune {
	switch {
	case width >= 6:
		return '#'
	case width >= 4:
		return 'o'
	case width >= 3:
		return '*'
	default:
		return '.'
	}
}

func (g *Grid) DrawCircle(c gallifrey.Point, radius, width float64) {
	radius = math.Abs(radius)
	steps := max(16, int(4*math.Pi*radius/g.unitX))
	r := pen(width)
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := g.cell(gallifrey.Point{X: c.X + math.Cos(a)*radius, Y: c.Y + math.Sin(a)*radius})
		g.plot(x, y, r)
	}
}

func (g *Grid) DrawLine(a, b gallifrey.Point, width float64) {
	x0, y0 := g.cell(a)
	x1, y1 := g.cell(b)
	steps := max(abs(x1-x0), abs(y1-y0))
	r := pen(width)
	if steps == 0 {
		g.plot(x0, y0, r)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		g.plot(x0+int(math.Round(t*float64(x1-x0))), y0+int(math.Round(t*float64(y1-y0))), r)
	}
}

func (g *Grid) DrawText(text string, anchor gallifrey.Point, _ float64) {
	x, y := g.cell(anchor)
	runes := []rune(text)
	x -= len(runes) / 2
	for i, r := range runes {
		g.plot(x+i, y, r)
	}
}

// String returns the grid rows joined by newlines, trailing spaces trimmed.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.rows; y++ {
		b.WriteString(strings.TrimRight(string(g.cells[y*g.cols:(y+1)*g.cols]), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Blit copies the grid onto screen.
func (g *Grid) Blit(screen tcell.Screen, style tcell.Style) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			screen.SetContent(x, y, g.cells[y*g.cols+x], nil, style)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TTY hosts the clock in a terminal.
type TTY struct {
	Screen   tcell.Screen
	Renderer *gallifrey.Renderer
	Logger   *log.Logger
	Aspect   float64
	Period   time.Duration
	Now      func() time.Time
	// OnTick runs after each periodic frame, not after repaints.
	OnTick func()
}

// Run draws a frame every Period and on resize or 'r', until Esc, 'q',
// Ctrl-C or ctx is done. The screen must already be initialised.
func (t *TTY) Run(ctx context.Context) error {
	if t.Now == nil {
		t.Now = time.Now
	}
	if t.Period <= 0 {
		t.Period = time.Second
	}
	if t.Aspect <= 0 {
		t.Aspect = 2
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := t.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.Period)
	defer ticker.Stop()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.draw()
			if t.OnTick != nil {
				t.OnTick()
			}
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.Screen.Sync()
				t.draw()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
					t.draw()
				}
			}
		}
	}
}

func (t *TTY) draw() {
	cols, rows := t.Screen.Size()
	l := t.Renderer.Layout()
	g := NewGrid(cols, rows, l.Width, l.Height, t.Aspect)

	f := t.Renderer.Render(t.Now())
	f.Replay(g)
	if f.Err != nil && t.Logger != nil {
		t.Logger.Debug("frame drawn without glyphs", "stamp", f.Stamp, "err", f.Err)
	}

	t.Screen.Clear()
	g.Blit(t.Screen, tcell.StyleDefault)
	t.Screen.Show()
}
