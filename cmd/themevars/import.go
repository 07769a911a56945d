// cmd/themevars/import.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codr1/themevars/internal/db"
	"github.com/codr1/themevars/internal/models"
)

const importTimeout = 10 * time.Second

func newImportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import NAME FILE",
		Short: "Validate a theme document and store it in the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			theme := models.Theme{Name: name, Source: string(source)}
			if err := theme.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			database, err := db.NewFromConfig(root.cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
			defer cancel()

			saved, err := importTheme(ctx, database, theme)
			if err != nil {
				return err
			}

			log.Info().Str("theme", saved.Name).Int64("id", saved.ID).Msg("Theme imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", saved.Name)
			return nil
		},
	}
}

func importTheme(ctx context.Context, database *db.DB, theme models.Theme) (models.Theme, error) {
	var saved models.Theme
	err := database.RunInTx(ctx, func(tx *db.DB) error {
		existing, err := models.GetTheme(ctx, tx.Queries, theme.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsSystem {
			return fmt.Errorf("theme %q is a system theme and cannot be replaced", theme.Name)
		}

		saved, err = tx.Queries.UpsertTheme(ctx, models.UpsertThemeParams{
			Name:   theme.Name,
			Source: theme.Source,
		})
		return err
	})
	return saved, err
}
