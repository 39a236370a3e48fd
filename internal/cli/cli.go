// Package cli implements the gallifreyan command line.
//
// With no subcommand the clock opens in a window. The subcommands render a
// single frame to a file (render), run the clock in the terminal (tty) and
// serve it over HTTP (serve).
package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/gallifreyan-clock/internal/config"
	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

var version = "dev"

// globalOpts are the persistent flags shared by every command.
type globalOpts struct {
	configPath string
	verbose    bool
	logLevel   string
	seed       uint64
	chime      bool
}

// RootCommand builds the command tree. Logs go to stderr.
func RootCommand(stderr io.Writer) *cobra.Command {
	var opts globalOpts

	root := &cobra.Command{
		Use:           "gallifreyan",
		Short:         "A clock drawn in circular Gallifreyan glyphs",
		Long:          `gallifreyan draws the current time as seven concentric rings decorated with digit glyphs, redrawn every second.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.logLevel != "" {
				l, err := charmlog.ParseLevel(opts.logLevel)
				if err != nil {
					return fmt.Errorf("invalid --log-level: %w", err)
				}
				level = l
			}
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), &opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "seed for glyph angles (0 picks a random seed)")
	root.PersistentFlags().BoolVar(&opts.chime, "chime", false, "play a click every second")

	root.AddCommand(newRenderCmd(&opts))
	root.AddCommand(newTTYCmd(&opts))
	root.AddCommand(newServeCmd(&opts))
	return root
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	return RootCommand(os.Stderr).ExecuteContext(ctx)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(ctx context.Context, opts *globalOpts) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.chime {
		cfg.Chime.Enabled = true
	}
	loggerFromContext(ctx).Debug("config loaded", "path", opts.configPath, "seed", cfg.Seed, "chime", cfg.Chime.Enabled)
	return cfg, nil
}

// newRenderer wires the angle source and logger into a renderer for cfg.
func newRenderer(ctx context.Context, cfg config.Config) *gallifrey.Renderer {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	src := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	alloc := gallifrey.NewAngleAllocator(src, cfg.MinSeparation, cfg.MaxAttempts)
	return gallifrey.NewRenderer(cfg.Layout(), alloc, gallifrey.WithLogger(loggerFromContext(ctx)))
}
