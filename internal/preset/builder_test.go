package preset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/darkmode"
	"github.com/codr1/themevars/internal/palette"
)

func mustTheme(t *testing.T, doc string) palette.Theme {
	t.Helper()
	theme, err := palette.ParseTheme([]byte(doc))
	require.NoError(t, err)
	return theme
}

const dualTheme = `
light:
  colors:
    primary: {"50": "#f8fafc"}
dark:
  colors:
    primary: {"50": "#0f172a"}
`

func shadeFunction(t *testing.T, m ColorFunctionMap, name, shade string) string {
	t.Helper()
	leaf, ok := m.Get(name)
	require.True(t, ok, "missing color %q", name)
	shaded, ok := leaf.(palette.Shaded)
	require.True(t, ok, "color %q is not shaded", name)
	value, ok := shaded.Get(shade)
	require.True(t, ok, "missing shade %s.%s", name, shade)
	return value
}

func TestBuildBasicTheme(t *testing.T) {
	theme := mustTheme(t, `
colors:
  primary:
    "50": "#f8fafc"
    "100": "#f1f5f9"
  secondary: "#000"
`)

	result, err := Build(theme, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, VariableBlock{
		{Name: "--tw-primary-50", Value: "248 250 252"},
		{Name: "--tw-primary-100", Value: "241 245 249"},
		{Name: "--tw-secondary", Value: "0 0 0"},
	}, result.LightVariables)

	assert.Equal(t, "rgba(var(--tw-primary-50) / <alpha-value>)", shadeFunction(t, result.Colors, "primary", "50"))
	secondary, ok := result.Colors.Get("secondary")
	require.True(t, ok)
	assert.Equal(t, palette.Single("rgba(var(--tw-secondary) / <alpha-value>)"), secondary)

	require.Len(t, result.BaseStyles, 1)
	root := result.BaseStyles[0]
	assert.Equal(t, ":root", root.Selector)
	assert.Equal(t, Declaration{Property: "color-scheme", Value: "light"}, root.Declarations[0])
	value, ok := root.Value("--tw-primary-50")
	require.True(t, ok)
	assert.Equal(t, "248 250 252", value)
	assert.Empty(t, result.Warnings)
}

func TestBuildHSL(t *testing.T) {
	theme := mustTheme(t, `colors: {primary: {"50": "hsl(210, 40%, 98%)"}}`)

	result, err := Build(theme, Options{ColorFormat: colors.FormatHSL})
	require.NoError(t, err)

	root, ok := result.BaseStyles.Find(":root")
	require.True(t, ok)
	value, _ := root.Value("--tw-primary-50")
	assert.Equal(t, "210 40% 98%", value)
	assert.Equal(t, "hsla(var(--tw-primary-50) / <alpha-value>)", shadeFunction(t, result.Colors, "primary", "50"))
}

func TestBuildDualThemeMedia(t *testing.T) {
	result, err := Build(mustTheme(t, dualTheme), Options{DarkMode: darkmode.StrategyMedia})
	require.NoError(t, err)

	require.Len(t, result.BaseStyles, 2)
	root := result.BaseStyles[0]
	assert.Equal(t, ":root", root.Selector)
	value, _ := root.Value("--tw-primary-50")
	assert.Equal(t, "248 250 252", value)

	media := result.BaseStyles[1]
	assert.Equal(t, "@media (prefers-color-scheme: dark)", media.Selector)
	assert.Empty(t, media.Declarations)
	require.Len(t, media.Children, 1)
	assert.Equal(t, ":root", media.Children[0].Selector)
	scheme, _ := media.Children[0].Value("color-scheme")
	assert.Equal(t, "dark", scheme)
	value, _ = media.Children[0].Value("--tw-primary-50")
	assert.Equal(t, "15 23 42", value)
}

func TestBuildDualThemeSelector(t *testing.T) {
	tests := []struct {
		name      string
		strategy  darkmode.Strategy
		selectors []string
		wantKey   string
	}{
		{name: "default", strategy: darkmode.StrategySelector, wantKey: ".dark"},
		{name: "class", strategy: darkmode.StrategyClass, wantKey: ".dark"},
		{name: "custom", strategy: darkmode.StrategySelector, selectors: []string{".dark-theme", `[data-mode="dark"]`}, wantKey: `.dark-theme, [data-mode="dark"]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Build(mustTheme(t, dualTheme), Options{DarkMode: test.strategy, DarkSelectors: test.selectors})
			require.NoError(t, err)

			dark, ok := result.BaseStyles.Find(test.wantKey)
			require.True(t, ok)
			scheme, _ := dark.Value("color-scheme")
			assert.Equal(t, "dark", scheme)
			value, _ := dark.Value("--tw-primary-50")
			assert.Equal(t, "15 23 42", value)
		})
	}
}

func TestBuildLightColorsAreCanonical(t *testing.T) {
	theme := mustTheme(t, `
light:
  colors:
    primary: "#fff"
dark:
  colors:
    primary: "#000"
    extra: "#111"
`)
	result, err := Build(theme, Options{DarkMode: darkmode.StrategySelector})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Colors.Len())
	assert.Len(t, result.DarkVariables, 2)
}

func TestBuildDroppedDarkVariables(t *testing.T) {
	var logs strings.Builder
	builder := NewBuilder(zerolog.New(&logs))

	result, err := builder.Build(mustTheme(t, dualTheme), Options{DarkMode: darkmode.StrategyNone})
	require.NoError(t, err)
	require.Len(t, result.BaseStyles, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "dark variables dropped")
	assert.Contains(t, logs.String(), "Dark theme variables dropped")

	_, err = builder.Build(mustTheme(t, dualTheme), Options{DarkMode: "false", Strict: true})
	assert.ErrorIs(t, err, ErrDarkVariablesDropped)
}

func TestBuildEmptyDarkPaletteEmitsNothing(t *testing.T) {
	theme := mustTheme(t, "light:\n  colors: {primary: '#fff'}\ndark:\n  colors: {}\n")

	result, err := Build(theme, Options{DarkMode: darkmode.StrategyNone, Strict: true})
	require.NoError(t, err)
	assert.Len(t, result.BaseStyles, 1)
	assert.Empty(t, result.Warnings)
}

func TestBuildSingleThemeIgnoresDarkStrategy(t *testing.T) {
	theme := mustTheme(t, `colors: {primary: "#fff"}`)

	result, err := Build(theme, Options{DarkMode: darkmode.StrategyMedia})
	require.NoError(t, err)
	assert.Len(t, result.BaseStyles, 1)
}

func TestBuildPrefixOnlyRenamesVariables(t *testing.T) {
	theme := mustTheme(t, dualTheme)

	base, err := Build(theme, DefaultOptions())
	require.NoError(t, err)
	prefixed, err := Build(theme, Options{Prefix: "x", DarkMode: darkmode.StrategyMedia})
	require.NoError(t, err)

	require.Len(t, prefixed.LightVariables, len(base.LightVariables))
	for i, v := range prefixed.LightVariables {
		assert.True(t, strings.HasPrefix(v.Name, "--x-"), v.Name)
		assert.Equal(t, base.LightVariables[i].Value, v.Value)
	}
	for i, v := range prefixed.DarkVariables {
		assert.True(t, strings.HasPrefix(v.Name, "--x-"), v.Name)
		assert.Equal(t, base.DarkVariables[i].Value, v.Value)
	}
	assert.Equal(t, "rgba(var(--x-primary-50) / <alpha-value>)", shadeFunction(t, prefixed.Colors, "primary", "50"))
}

func TestBuildInvalidColor(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{name: "shade", doc: `colors: {primary: {"50": "invalid-color"}}`, path: "light.primary.50"},
		{name: "single", doc: `colors: {primary: "#zzz"}`, path: "light.primary"},
		{name: "dark", doc: "light:\n  colors: {a: red}\ndark:\n  colors: {a: nope}\n", path: "dark.a"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Build(mustTheme(t, test.doc), DefaultOptions())
			assert.Nil(t, result)
			require.ErrorIs(t, err, colors.ErrInvalidColor)
			assert.Contains(t, err.Error(), test.path)
		})
	}
}

func TestBuildInvalidFormat(t *testing.T) {
	_, err := Build(mustTheme(t, `colors: {}`), Options{ColorFormat: "cmyk"})
	assert.ErrorIs(t, err, colors.ErrInvalidFormat)
}

func TestPresetJSON(t *testing.T) {
	result, err := Build(mustTheme(t, dualTheme), DefaultOptions())
	require.NoError(t, err)

	data, err := json.Marshal(result.Preset())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"content": [],
		"theme": {"extend": {"colors": {"primary": {"50": "rgba(var(--tw-primary-50) / <alpha-value>)"}}}},
		"base": {
			":root": {"color-scheme": "light", "--tw-primary-50": "248 250 252"},
			"@media (prefers-color-scheme: dark)": {
				":root": {"color-scheme": "dark", "--tw-primary-50": "15 23 42"}
			}
		}
	}`, string(data))
}

func TestBuildVariableNameCollisionLaterValueWins(t *testing.T) {
	theme := mustTheme(t, `
colors:
  a-b: "#000"
  a:
    b: "#fff"
  c: red
`)

	result, err := Build(theme, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, VariableBlock{
		{Name: "--tw-a-b", Value: "255 255 255"},
		{Name: "--tw-c", Value: "255 0 0"},
	}, result.LightVariables)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "--tw-a-b")

	root, ok := result.BaseStyles.Find(":root")
	require.True(t, ok)
	assert.Len(t, root.Declarations, 3)

	data, err := json.Marshal(result.BaseStyles)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), `"--tw-a-b"`))
}

func TestBuildDarkSelectorMatchingLightSelector(t *testing.T) {
	opts := Options{DarkMode: darkmode.StrategySelector, DarkSelectors: []string{":root"}}
	result, err := Build(mustTheme(t, dualTheme), opts)
	require.NoError(t, err)

	require.Len(t, result.BaseStyles, 1)
	scheme, _ := result.BaseStyles[0].Value("color-scheme")
	assert.Equal(t, "dark", scheme)
	require.Len(t, result.Warnings, 1)

	data, err := json.Marshal(result.BaseStyles)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), `":root"`))
}
