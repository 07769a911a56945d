// cmd/themevars/root.go
package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codr1/themevars/internal/config"
)

type rootOptions struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "themevars",
		Short: "Generate CSS variable color themes for utility-first CSS frameworks",
		Long: `themevars turns a color palette document into CSS custom properties,
alpha aware color functions and a framework preset, with optional dark mode
variants driven by a media query or a selector.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := setupLogger(cmd.ErrOrStderr(), cfg.IsDevelopment(), opts.logLevel); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config.yaml (defaults apply when omitted)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newBuildCmd(opts),
		newValidateCmd(opts),
		newPreviewCmd(opts),
		newImportCmd(opts),
		newServeCmd(opts),
		newMigrateCmd(opts),
	)

	return cmd
}

func setupLogger(w io.Writer, development bool, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if development {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
	log.Logger = log.Logger.Level(lvl)
	return nil
}
