// cmd/themevars/serve.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/themevars/internal/api/themes"
	"github.com/codr1/themevars/internal/db"
	"github.com/codr1/themevars/internal/ratelimit"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve stored themes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg

			database, err := db.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			if err := db.SeedSystemThemes(cmd.Context(), database); err != nil {
				return fmt.Errorf("seed system themes: %w", err)
			}

			themes.InitHandlers(database.Queries, cfg.PresetOptions())
			var limiter *ratelimit.Limiter
			if cfg.RateLimit.WritesPerMinute > 0 {
				limiter = ratelimit.New(&ratelimit.Config{
					MaxPerWindow: cfg.RateLimit.WritesPerMinute,
					Window:       time.Minute,
				})
				defer limiter.Close()
			}
			server := newServer(cfg, limiter)

			// Setup graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				log.Info().Str("addr", server.Addr).Msg("Starting server")
				if err := server.ListenAndServe(); err != http.ErrServerClosed {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			})

			// Wait for interrupt signal
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
				defer cancel()

				log.Info().Msg("Shutting down server")
				if err := server.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown error: %w", err)
				}
				return nil
			})

			return g.Wait()
		},
	}
}
