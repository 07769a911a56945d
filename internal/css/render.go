// internal/css/render.go
package css

import (
	"bufio"
	"io"
	"strings"

	"github.com/codr1/themevars/internal/preset"
)

// Options controls stylesheet output.
type Options struct {
	// Layer wraps every block in "@layer <Layer> { ... }" when set.
	Layer string
	// Indent is the per level indentation. Empty means two spaces.
	Indent string
}

// Render writes blocks as stylesheet text in order, one blank line between
// top level rules.
func Render(w io.Writer, blocks preset.BaseStyles, opts Options) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	bw := bufio.NewWriter(w)
	depth := 0
	if opts.Layer != "" {
		bw.WriteString("@layer " + opts.Layer + " {\n")
		depth = 1
	}
	for i, block := range blocks {
		if i > 0 {
			bw.WriteString("\n")
		}
		writeBlock(bw, block, depth, opts.Indent)
	}
	if opts.Layer != "" {
		bw.WriteString("}\n")
	}
	return bw.Flush()
}

// String renders blocks with default options.
func String(blocks preset.BaseStyles) string {
	var sb strings.Builder
	_ = Render(&sb, blocks, Options{})
	return sb.String()
}

func writeBlock(w *bufio.Writer, block preset.StyleBlock, depth int, indent string) {
	pad := strings.Repeat(indent, depth)
	w.WriteString(pad + block.Selector + " {\n")
	for _, decl := range block.Declarations {
		w.WriteString(pad + indent + decl.Property + ": " + decl.Value + ";\n")
	}
	for _, child := range block.Children {
		writeBlock(w, child, depth+1, indent)
	}
	w.WriteString(pad + "}\n")
}
