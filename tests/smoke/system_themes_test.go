//go:build smoke

package smoke

import (
	"context"
	"testing"

	dbpkg "github.com/codr1/themevars/internal/db"
	"github.com/codr1/themevars/internal/preset"
	"github.com/codr1/themevars/internal/testutil"
)

func TestSystemThemesSeeded(t *testing.T) {
	db := testutil.NewSeededTestDB(t)
	ctx := context.Background()

	expectedThemes, err := dbpkg.ParseSystemThemes()
	if err != nil {
		t.Fatalf("parse system themes: %v", err)
	}

	rows, err := db.Queries.ListThemes(ctx)
	if err != nil {
		t.Fatalf("list themes: %v", err)
	}
	if len(rows) != len(expectedThemes) {
		t.Fatalf("system themes count mismatch: got %d want %d", len(rows), len(expectedThemes))
	}

	expectedByName := make(map[string]string, len(expectedThemes))
	for _, theme := range expectedThemes {
		expectedByName[theme.Name] = theme.Source
	}

	for _, row := range rows {
		source, ok := expectedByName[row.Name]
		if !ok {
			t.Fatalf("unexpected system theme %q", row.Name)
		}
		if !row.IsSystem {
			t.Fatalf("theme %q not marked as system", row.Name)
		}
		if row.Source != source {
			t.Fatalf("theme %q source mismatch", row.Name)
		}

		doc, err := row.Document()
		if err != nil {
			t.Fatalf("theme %q: %v", row.Name, err)
		}
		result, err := preset.Build(doc, preset.DefaultOptions())
		if err != nil {
			t.Fatalf("theme %q: build: %v", row.Name, err)
		}
		if len(result.Warnings) != 0 {
			t.Fatalf("theme %q: unexpected warnings %v", row.Name, result.Warnings)
		}
	}
}
