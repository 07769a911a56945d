// internal/preset/styles.go
package preset

import (
	"bytes"
	"encoding/json"
)

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// StyleBlock is a rule keyed by a selector list or an at-rule. At-rule
// blocks hold their rules in Children and carry no declarations.
type StyleBlock struct {
	Selector     string
	Declarations []Declaration
	Children     []StyleBlock
}

// BaseStyles is the ordered list of blocks registered as base styles.
type BaseStyles []StyleBlock

// Find returns the top level block with the given selector.
func (s BaseStyles) Find(selector string) (StyleBlock, bool) {
	for _, block := range s {
		if block.Selector == selector {
			return block, true
		}
	}
	return StyleBlock{}, false
}

// Value returns the value of property within the block.
func (b StyleBlock) Value(property string) (string, bool) {
	for _, decl := range b.Declarations {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// set adds block, or replaces an earlier block with the same selector in
// place. It reports whether a block was replaced.
func (s *BaseStyles) set(block StyleBlock) bool {
	for i := range *s {
		if (*s)[i].Selector == block.Selector {
			(*s)[i] = block
			return true
		}
	}
	*s = append(*s, block)
	return false
}

// MarshalJSON encodes the blocks in the object shape a framework's
// add-base callback expects: selector -> {property: value} with at-rules
// nesting their child selectors.
func (s BaseStyles) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeBlocks(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBlocks(buf *bytes.Buffer, blocks []StyleBlock) error {
	buf.WriteByte('{')
	for i, block := range blocks {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, block.Selector); err != nil {
			return err
		}
		buf.WriteByte(':')
		if len(block.Children) > 0 {
			if err := writeBlocks(buf, block.Children); err != nil {
				return err
			}
			continue
		}
		buf.WriteByte('{')
		for j, decl := range block.Declarations {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, decl.Property); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeString(buf, decl.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Preset is the configuration object handed to the CSS framework. Content
// stays empty for the caller to fill; Base carries what the plugin would
// register through its add-base callback.
type Preset struct {
	Content []string    `json:"content"`
	Theme   PresetTheme `json:"theme"`
	Base    BaseStyles  `json:"base"`
}

type PresetTheme struct {
	Extend PresetExtend `json:"extend"`
}

type PresetExtend struct {
	Colors ColorFunctionMap `json:"colors"`
}

// Preset wraps the result in the framework configuration shape.
func (r *Result) Preset() Preset {
	return Preset{
		Content: []string{},
		Theme:   PresetTheme{Extend: PresetExtend{Colors: r.Colors}},
		Base:    r.BaseStyles,
	}
}
