package cli

import (
	"context"

	"github.com/iburimskiy/gallifreyan-clock/internal/chime"
	"github.com/iburimskiy/gallifreyan-clock/internal/config"
	"github.com/iburimskiy/gallifreyan-clock/internal/game"
)

func runWindow(ctx context.Context, global *globalOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(ctx, global)
	if err != nil {
		return err
	}

	g, err := game.New(cfg, newRenderer(ctx, cfg), newChime(ctx, cfg), logger)
	if err != nil {
		game.ShowError(err)
		return err
	}
	logger.Info("opening window", "width", cfg.Width, "height", cfg.Height)
	if err := game.Run(g); err != nil {
		game.ShowError(err)
		return err
	}
	return nil
}

// newChime returns nil unless a chime is enabled or a clip is configured.
// Load failures are logged and leave the clock silent.
func newChime(ctx context.Context, cfg config.Config) *chime.Chime {
	if !cfg.Chime.Enabled && cfg.Chime.File == "" {
		return nil
	}
	logger := loggerFromContext(ctx)
	c, err := chime.New(cfg.Chime, logger)
	if err != nil {
		logger.Warn("chime unavailable", "err", err)
		return nil
	}
	return c
}
