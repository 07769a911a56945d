package layouts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeStyles(t *testing.T) {
	var sb strings.Builder
	err := ThemeStyles(":root {\n  --tw-<b>: 0 0 0;\n}\n").Render(context.Background(), &sb)
	require.NoError(t, err)

	html := sb.String()
	assert.True(t, strings.HasPrefix(html, "<style>\n:root {"))
	assert.True(t, strings.HasSuffix(html, "</style>"))
	assert.Contains(t, html, `--tw-\3c b>: 0 0 0;`)
	assert.Contains(t, html, ".swatch {")
	assert.Equal(t, 1, strings.Count(html, "<"+"/style>"))
}

func TestStyleTextCannotCloseElement(t *testing.T) {
	assert.Equal(t, `\3c /style>`, styleText("</style>"))
}
