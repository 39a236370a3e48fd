package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/gallifreyan-clock/internal/config"
	"github.com/iburimskiy/gallifreyan-clock/internal/sink"
)

func newTTYCmd(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "tty",
		Short: "Run the clock in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTTY(cmd.Context(), global)
		},
	}
}

func runTTY(ctx context.Context, global *globalOpts) error {
	cfg, err := loadConfig(ctx, global)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	c := newChime(ctx, cfg)
	if c != nil {
		if err := c.Init(); err != nil {
			loggerFromContext(ctx).Warn("chime disabled", "err", err)
		}
	}

	tty := &sink.TTY{
		Screen:   screen,
		Renderer: newRenderer(ctx, cfg),
		Logger:   loggerFromContext(ctx),
		Aspect:   cfg.TTY.CellAspect,
		Period:   config.TickPeriod,
	}
	if c != nil {
		tty.OnTick = c.Ring
	}
	if err := tty.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
