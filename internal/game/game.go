// Package game hosts the clock in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/gallifreyan-clock/internal/chime"
	"github.com/iburimskiy/gallifreyan-clock/internal/config"
	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
	"github.com/iburimskiy/gallifreyan-clock/internal/sink"
)

// Game implements ebiten.Game. Frames are rebuilt on ticks and repaint
// requests only; Draw replays the cached frame.
type Game struct {
	cfg      config.Config
	renderer *gallifrey.Renderer
	chime    *chime.Chime
	logger   *log.Logger
	now      func() time.Time

	sched *scheduler
	frame gallifrey.Frame
	face  *text.GoTextFaceSource

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

// New returns a game drawing with r. c may be nil for a silent clock.
func New(cfg config.Config, r *gallifrey.Renderer, c *chime.Chime, logger *log.Logger) (*Game, error) {
	face, err := newFaceSource()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		cfg:      cfg,
		renderer: r,
		chime:    c,
		logger:   logger,
		now:      time.Now,
		sched:    newScheduler(config.TickPeriod),
		face:     face,
		prevKey:  map[ebiten.Key]bool{},
	}, nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyR) {
		g.sched.requestRepaint()
	}
	if justPressed(ebiten.KeyM) && g.chime != nil {
		g.chime.Toggle()
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveSnapshotDialog(); err != nil {
			g.lastErr = err
			g.logger.Error("snapshot failed", "err", err)
		}
	}

	g.step(g.now())
	return nil
}

// step rebuilds the frame when the scheduler says so and rings on ticks.
func (g *Game) step(now time.Time) {
	render, tick := g.sched.due(now)
	if !render {
		return
	}
	g.frame = g.renderer.Render(now)
	if g.frame.Err != nil {
		g.lastErr = g.frame.Err
	}
	if tick && g.chime != nil {
		g.chime.Ring()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(paper)
	g.frame.Replay(&painter{dst: screen, source: g.face})

	status := "R: repaint  S: snapshot  M: chime  Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, g.cfg.Height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) saveSnapshotDialog() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.ConfirmOverwrite(),
		zenity.Filename(snapshotName(g.now())),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.saveSnapshot(filename)
}

// saveSnapshot writes the frame currently on screen to path as PNG.
func (g *Game) saveSnapshot(path string) error {
	l := g.renderer.Layout()
	data, err := sink.RenderPNG(g.frame, l.Width, l.Height)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	g.logger.Info("snapshot saved", "path", path, "stamp", g.frame.Stamp)
	return nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(config.WindowTitle)

	if g.chime != nil {
		if err := g.chime.Init(); err != nil {
			// Non-fatal, the clock can run without sound
			g.logger.Warn("chime disabled", "err", err)
		}
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// ShowError reports a fatal error in a dialog, for launches without a terminal.
func ShowError(err error) {
	_ = zenity.Error(err.Error(), zenity.Title(config.WindowTitle))
}
