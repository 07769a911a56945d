// internal/models/themes.go
package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
)

const maxThemeNameLength = 100
const maxThemeSourceBytes = 256 << 10

var themeNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ErrThemeNotFound is returned by ThemeQueries lookups for unknown names.
var ErrThemeNotFound = errors.New("theme not found")

// Theme is a stored theme document. Source holds the YAML or JSON document
// exactly as it was submitted.
type Theme struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsSystem  bool      `json:"isSystem"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpsertThemeParams struct {
	Name     string
	IsSystem bool
	Source   string
}

type ThemeQueries interface {
	ListThemes(ctx context.Context) ([]Theme, error)
	GetTheme(ctx context.Context, name string) (Theme, error)
	UpsertTheme(ctx context.Context, arg UpsertThemeParams) (Theme, error)
	DeleteTheme(ctx context.Context, name string) (int64, error)
}

// ValidateThemeName checks the URL safe naming rules for stored themes.
func ValidateThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("name must not have leading or trailing whitespace")
	}
	if len(name) > maxThemeNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxThemeNameLength)
	}
	if !themeNameRegex.MatchString(name) {
		return fmt.Errorf("name may only contain lowercase letters, numbers, hyphens, and underscores")
	}
	return nil
}

// Validate checks the name and that the source builds with default options.
func (t Theme) Validate() error {
	if err := ValidateThemeName(t.Name); err != nil {
		return err
	}
	if len(t.Source) > maxThemeSourceBytes {
		return fmt.Errorf("source must be %d bytes or fewer", maxThemeSourceBytes)
	}
	doc, err := t.Document()
	if err != nil {
		return err
	}
	if _, err := preset.Build(doc, preset.DefaultOptions()); err != nil {
		return err
	}
	return nil
}

// Document parses the stored source.
func (t Theme) Document() (palette.Theme, error) {
	return palette.ParseTheme([]byte(t.Source))
}

// GetTheme loads a theme by name, returning nil when it does not exist.
func GetTheme(ctx context.Context, queries ThemeQueries, name string) (*Theme, error) {
	theme, err := queries.GetTheme(ctx, name)
	if err != nil {
		if errors.Is(err, ErrThemeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}
