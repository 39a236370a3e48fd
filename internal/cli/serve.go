package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/gallifreyan-clock/internal/config"
	"github.com/iburimskiy/gallifreyan-clock/internal/server"
)

func newServeCmd(global *globalOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the clock face as SVG and PNG over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), global, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+config.ServeAddr+" or serve.addr)")
	return cmd
}

func runServe(ctx context.Context, global *globalOpts, addr string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(ctx, global)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(newRenderer(ctx, cfg), logger, nil).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving clock", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
