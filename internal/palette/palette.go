// internal/palette/palette.go
package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Leaf is the value of a palette entry: either Single or Shaded.
type Leaf interface {
	isLeaf()
}

// Single is a color family with exactly one value.
type Single string

// Shaded is a color family with ordered shade variants such as "50".."900".
type Shaded []Shade

// Shade is one named variant of a color family.
type Shade struct {
	Key   string
	Value string
}

func (Single) isLeaf() {}
func (Shaded) isLeaf() {}

// Get returns the value of the shade with the given key.
func (s Shaded) Get(key string) (string, bool) {
	for _, shade := range s {
		if shade.Key == key {
			return shade.Value, true
		}
	}
	return "", false
}

// Entry is a named palette leaf.
type Entry struct {
	Name string
	Leaf Leaf
}

// Palette is an ordered set of named colors. Order follows the source
// document and drives the order of every generated artifact.
type Palette struct {
	entries []Entry
}

// New builds a palette, rejecting duplicate names and nil leaves.
func New(entries ...Entry) (Palette, error) {
	var p Palette
	for _, entry := range entries {
		if err := p.Add(entry.Name, entry.Leaf); err != nil {
			return Palette{}, err
		}
	}
	return p, nil
}

// Add appends a color family to the palette.
func (p *Palette) Add(name string, leaf Leaf) error {
	if name == "" {
		return fmt.Errorf("color name is required")
	}
	if leaf == nil {
		return fmt.Errorf("color %q has no value", name)
	}
	if _, exists := p.Get(name); exists {
		return fmt.Errorf("duplicate color %q", name)
	}
	p.entries = append(p.entries, Entry{Name: name, Leaf: leaf})
	return nil
}

// Entries returns the palette entries in order.
func (p Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

func (p Palette) Len() int {
	return len(p.entries)
}

// Get returns the leaf stored under name.
func (p Palette) Get(name string) (Leaf, bool) {
	for _, entry := range p.entries {
		if entry.Name == name {
			return entry.Leaf, true
		}
	}
	return nil, false
}

// MarshalJSON writes the palette as a JSON object in palette order.
func (p Palette) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, entry.Name); err != nil {
			return nil, err
		}
		switch leaf := entry.Leaf.(type) {
		case Single:
			if err := writeJSONValue(&buf, string(leaf)); err != nil {
				return nil, err
			}
		case Shaded:
			buf.WriteByte('{')
			for j, shade := range leaf {
				if j > 0 {
					buf.WriteByte(',')
				}
				if err := writeJSONKey(&buf, shade.Key); err != nil {
					return nil, err
				}
				if err := writeJSONValue(&buf, shade.Value); err != nil {
					return nil, err
				}
			}
			buf.WriteByte('}')
		default:
			return nil, fmt.Errorf("color %q has unsupported value %T", entry.Name, entry.Leaf)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	if err := writeJSONValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, value string) error {
	// Color functions carry a literal <alpha-value> placeholder, keep it readable.
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
