// internal/db/themes_parser.go
package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themevars/assets"
	"github.com/codr1/themevars/internal/models"
)

const themeFileSuffix = ".yaml"

// ParseSystemThemes reads assets/themes and returns the system themes sorted
// by name. Every theme must validate.
func ParseSystemThemes() ([]models.Theme, error) {
	return parseThemesFS(assets.ThemesFS, assets.ThemesDir)
}

func parseThemesFS(fsys fs.FS, dir string) ([]models.Theme, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read embedded themes: %w", err)
	}

	themes := make([]models.Theme, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), themeFileSuffix) {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read theme %s: %w", entry.Name(), err)
		}

		theme := models.Theme{
			Name:     strings.TrimSuffix(entry.Name(), themeFileSuffix),
			IsSystem: true,
			Source:   string(data),
		}
		if err := theme.Validate(); err != nil {
			return nil, fmt.Errorf("invalid theme %q: %w", theme.Name, err)
		}

		themes = append(themes, theme)
	}

	return themes, nil
}

// SeedSystemThemes upserts every embedded system theme in one transaction.
// A user theme already stored under a system theme's name is left alone and
// that system theme is skipped.
func SeedSystemThemes(ctx context.Context, database *DB) error {
	themes, err := ParseSystemThemes()
	if err != nil {
		return err
	}

	return database.RunInTx(ctx, func(tx *DB) error {
		seeded := 0
		for _, theme := range themes {
			existing, err := tx.Queries.GetTheme(ctx, theme.Name)
			switch {
			case errors.Is(err, models.ErrThemeNotFound):
			case err != nil:
				return fmt.Errorf("load theme %q: %w", theme.Name, err)
			case !existing.IsSystem:
				log.Warn().Str("theme", theme.Name).Msg("User theme shadows system theme, skipping seed")
				continue
			}

			if _, err := tx.Queries.UpsertTheme(ctx, models.UpsertThemeParams{
				Name:     theme.Name,
				IsSystem: true,
				Source:   theme.Source,
			}); err != nil {
				return fmt.Errorf("seed theme %q: %w", theme.Name, err)
			}
			seeded++
		}
		log.Info().Int("count", seeded).Msg("Seeded system themes")
		return nil
	})
}
