package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/themevars/internal/darkmode"
	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
)

const dualTheme = `
light:
  colors:
    primary: {"50": "#f8fafc"}
    accent: "#2563eb"
dark:
  colors:
    primary: {"50": "#0f172a"}
`

func build(t *testing.T, opts preset.Options) preset.BaseStyles {
	t.Helper()
	theme, err := palette.ParseTheme([]byte(dualTheme))
	require.NoError(t, err)
	result, err := preset.Build(theme, opts)
	require.NoError(t, err)
	return result.BaseStyles
}

func TestStringMedia(t *testing.T) {
	got := String(build(t, preset.DefaultOptions()))

	assert.Equal(t, `:root {
  color-scheme: light;
  --tw-primary-50: 248 250 252;
  --tw-accent: 37 99 235;
}

@media (prefers-color-scheme: dark) {
  :root {
    color-scheme: dark;
    --tw-primary-50: 15 23 42;
  }
}
`, got)
}

func TestRenderSelectorWithLayer(t *testing.T) {
	blocks := build(t, preset.Options{DarkMode: darkmode.StrategySelector, DarkSelectors: []string{".dark", "[data-theme=dark]"}})

	var sb testWriter
	require.NoError(t, Render(&sb, blocks, Options{Layer: "base", Indent: "\t"}))

	assert.Equal(t, "@layer base {\n"+
		"\t:root {\n"+
		"\t\tcolor-scheme: light;\n"+
		"\t\t--tw-primary-50: 248 250 252;\n"+
		"\t\t--tw-accent: 37 99 235;\n"+
		"\t}\n"+
		"\n"+
		"\t.dark, [data-theme=dark] {\n"+
		"\t\tcolor-scheme: dark;\n"+
		"\t\t--tw-primary-50: 15 23 42;\n"+
		"\t}\n"+
		"}\n", string(sb))
}

func TestStringEmpty(t *testing.T) {
	assert.Equal(t, "", String(nil))
}

type testWriter []byte

func (w *testWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
