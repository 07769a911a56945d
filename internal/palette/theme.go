// internal/palette/theme.go
package palette

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrAmbiguousTheme is returned when a document names only one of
	// light/dark, or mixes a top-level palette with light/dark sub-themes.
	ErrAmbiguousTheme = errors.New("ambiguous theme: provide either colors or both light and dark")
	// ErrEmptyTheme is returned for documents without any palette.
	ErrEmptyTheme = errors.New("theme has no colors")
)

const (
	keyColors = "colors"
	keyLight  = "light"
	keyDark   = "dark"
)

// Theme is either a single palette or a light/dark pair. Dark is nil for
// single mode themes.
type Theme struct {
	Light Palette
	Dark  *Palette
}

// NewTheme returns a single mode theme.
func NewTheme(p Palette) Theme {
	return Theme{Light: p}
}

// NewDualTheme returns a theme with light and dark variants.
func NewDualTheme(light, dark Palette) Theme {
	return Theme{Light: light, Dark: &dark}
}

// IsDual reports whether the theme carries a dark palette.
func (t Theme) IsDual() bool {
	return t.Dark != nil
}

// ParseTheme decodes a YAML or JSON theme document:
//
//	colors:
//	  primary: {"50": "#f8fafc", "100": "#f1f5f9"}
//	  secondary: "#64748b"
//
// or
//
//	light: {colors: {...}}
//	dark:  {colors: {...}}
//
// Key order is preserved.
func ParseTheme(data []byte) (Theme, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return Theme{}, err
	}
	if root == nil {
		return Theme{}, ErrEmptyTheme
	}
	if root.Kind != yaml.MappingNode {
		return Theme{}, fmt.Errorf("line %d: theme must be a mapping", root.Line)
	}

	sections := map[string]*yaml.Node{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolveAlias(root.Content[i+1])
		switch key.Value {
		case keyColors, keyLight, keyDark:
		default:
			return Theme{}, fmt.Errorf("line %d: unknown theme key %q", key.Line, key.Value)
		}
		if _, dup := sections[key.Value]; dup {
			return Theme{}, fmt.Errorf("line %d: duplicate theme key %q", key.Line, key.Value)
		}
		sections[key.Value] = value
	}

	colorsNode, hasColors := sections[keyColors]
	lightNode, hasLight := sections[keyLight]
	darkNode, hasDark := sections[keyDark]

	switch {
	case hasColors && (hasLight || hasDark):
		return Theme{}, ErrAmbiguousTheme
	case hasLight != hasDark:
		return Theme{}, ErrAmbiguousTheme
	case hasColors:
		p, err := decodePalette(colorsNode)
		if err != nil {
			return Theme{}, err
		}
		return NewTheme(p), nil
	case hasLight:
		light, err := decodeMode(keyLight, lightNode)
		if err != nil {
			return Theme{}, err
		}
		dark, err := decodeMode(keyDark, darkNode)
		if err != nil {
			return Theme{}, err
		}
		return NewDualTheme(light, dark), nil
	}
	return Theme{}, ErrEmptyTheme
}

func decodeMode(mode string, node *yaml.Node) (Palette, error) {
	if node.Kind != yaml.MappingNode {
		return Palette{}, fmt.Errorf("line %d: %s theme must be a mapping", node.Line, mode)
	}
	var colors *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Value != keyColors {
			return Palette{}, fmt.Errorf("line %d: unknown %s theme key %q", key.Line, mode, key.Value)
		}
		colors = resolveAlias(node.Content[i+1])
	}
	if colors == nil {
		return Palette{}, fmt.Errorf("%s theme: %w", mode, ErrEmptyTheme)
	}
	p, err := decodePalette(colors)
	if err != nil {
		return Palette{}, fmt.Errorf("%s theme: %w", mode, err)
	}
	return p, nil
}

func decodePalette(node *yaml.Node) (Palette, error) {
	if isNull(node) {
		return Palette{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return Palette{}, fmt.Errorf("line %d: colors must be a mapping", node.Line)
	}

	var p Palette
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return Palette{}, fmt.Errorf("line %d: color name must be a scalar", key.Line)
		}

		leaf, err := decodeLeaf(key.Value, value)
		if err != nil {
			return Palette{}, err
		}
		if err := p.Add(key.Value, leaf); err != nil {
			return Palette{}, fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return p, nil
}

func decodeLeaf(name string, node *yaml.Node) (Leaf, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			return nil, fmt.Errorf("line %d: color %q has no value", node.Line, name)
		}
		return Single(node.Value), nil
	case yaml.MappingNode:
		shades := Shaded{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], resolveAlias(node.Content[i+1])
			if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode || isNull(value) {
				return nil, fmt.Errorf("line %d: shade %s.%s must be a color string", key.Line, name, key.Value)
			}
			if _, dup := shades.Get(key.Value); dup {
				return nil, fmt.Errorf("line %d: duplicate shade %s.%s", key.Line, name, key.Value)
			}
			shades = append(shades, Shade{Key: key.Value, Value: value.Value})
		}
		return shades, nil
	}
	return nil, fmt.Errorf("line %d: color %q must be a string or a mapping of shades", node.Line, name)
}

// decodeDocument returns the root node of a theme document, or nil for an
// empty one. JSON documents are YAML flow mappings, so one decoder covers both.
func decodeDocument(data []byte) (*yaml.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := resolveAlias(doc.Content[0])
	if isNull(root) {
		return nil, nil
	}
	return root, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
