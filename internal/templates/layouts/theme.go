package layouts

import (
	"strings"

	"github.com/a-h/templ"
)

const previewStyles = `body { font-family: system-ui, sans-serif; margin: 2rem; }
.group { display: flex; flex-wrap: wrap; gap: 0.5rem; margin-bottom: 1rem; }
.swatch { width: 7rem; padding: 0.75rem; border-radius: 0.5rem; font-size: 0.75rem; }
.warning { color: #b45309; }
`

// ThemeStyles renders a generated stylesheet plus the page rules as one
// <style> element.
func ThemeStyles(stylesheet string) templ.Component {
	return templ.Raw("<style>\n" + styleText(stylesheet) + previewStyles + "</style>")
}

// styleText keeps arbitrary color names from closing the <style> element.
func styleText(stylesheet string) string {
	return strings.ReplaceAll(stylesheet, "<", `\3c `)
}
