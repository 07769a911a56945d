package themes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
)

func TestThemePreview(t *testing.T) {
	theme, err := palette.ParseTheme([]byte(`
light:
  colors:
    primary:
      "50": "#f8fafc"
      "900": "#0f172a"
dark:
  colors:
    primary:
      "50": "#0f172a"
      "900": "#f8fafc"
    "<b>": red
`))
	require.NoError(t, err)

	result, err := preset.Build(theme, preset.DefaultOptions())
	require.NoError(t, err)

	data, err := NewPreviewData("slate", theme, result)
	require.NoError(t, err)
	require.Len(t, data.Light, 1)
	require.Len(t, data.Light[0].Swatches, 2)
	assert.Equal(t, "#000000", data.Light[0].Swatches[0].Text)
	assert.Equal(t, "#FFFFFF", data.Light[0].Swatches[1].Text)
	assert.Equal(t, "#0f172a", data.Light[0].Swatches[1].Hex)
	require.Len(t, data.Dark, 2)

	var sb strings.Builder
	require.NoError(t, ThemePreview(data).Render(context.Background(), &sb))
	html := sb.String()

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>slate theme</title>")
	assert.Contains(t, html, "--tw-primary-50: 248 250 252;")
	assert.Contains(t, html, "<h2>Light</h2>")
	assert.Contains(t, html, "<h2>Dark</h2>")
	assert.Contains(t, html, `class="swatch"`)
	assert.Contains(t, html, "#FFFFFF")
	assert.Contains(t, html, "&lt;b&gt;")
	assert.NotContains(t, html, "<h3><b>")
	assert.NotContains(t, html, "--tw-<b>")
}

func TestThemePreviewWarningsAndSingleTheme(t *testing.T) {
	data := PreviewData{
		Name:     "brand",
		Warnings: []string{"2 dark variables dropped"},
		Light: []SwatchGroup{{
			Name:     "primary",
			Swatches: []Swatch{{Label: "primary", Value: "#3b82f6", Hex: "#3b82f6", Text: "#000000"}},
		}},
	}

	var sb strings.Builder
	require.NoError(t, ThemePreview(data).Render(context.Background(), &sb))
	html := sb.String()

	assert.Contains(t, html, `<p class="warning">2 dark variables dropped</p>`)
	assert.Contains(t, html, "<strong>primary</strong>")
	assert.NotContains(t, html, "<h2>Dark</h2>")
}

func TestNewPreviewDataInvalidColor(t *testing.T) {
	p, err := palette.New(palette.Entry{Name: "primary", Leaf: palette.Single("nope")})
	require.NoError(t, err)

	_, err = NewPreviewData("broken", palette.NewTheme(p), &preset.Result{})
	assert.ErrorContains(t, err, "primary")
}
