package themes

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/css"
	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
)

type Swatch struct {
	Label string
	Value string
	Hex   string
	Text  string
}

// Attributes paints the swatch with its own color and a readable text color.
func (s Swatch) Attributes() templ.Attributes {
	return templ.Attributes{
		"style": "background-color: " + s.Hex + "; color: " + s.Text,
	}
}

// SwatchGroup is one palette entry: a single swatch for plain colors, one per
// shade otherwise.
type SwatchGroup struct {
	Name     string
	Swatches []Swatch
}

type PreviewData struct {
	Name       string
	Stylesheet string
	Light      []SwatchGroup
	Dark       []SwatchGroup
	Warnings   []string
}

func NewPreviewData(name string, theme palette.Theme, result *preset.Result) (PreviewData, error) {
	data := PreviewData{
		Name:       name,
		Stylesheet: css.String(result.BaseStyles),
		Warnings:   result.Warnings,
	}

	var err error
	if data.Light, err = swatchGroups(theme.Light); err != nil {
		return PreviewData{}, err
	}
	if theme.Dark != nil {
		if data.Dark, err = swatchGroups(*theme.Dark); err != nil {
			return PreviewData{}, err
		}
	}
	return data, nil
}

func swatchGroups(p palette.Palette) ([]SwatchGroup, error) {
	groups := make([]SwatchGroup, 0, p.Len())
	for _, entry := range p.Entries() {
		group := SwatchGroup{Name: entry.Name}
		switch leaf := entry.Leaf.(type) {
		case palette.Single:
			swatch, err := newSwatch(entry.Name, string(leaf))
			if err != nil {
				return nil, err
			}
			group.Swatches = append(group.Swatches, swatch)
		case palette.Shaded:
			for _, shade := range leaf {
				swatch, err := newSwatch(shade.Key, shade.Value)
				if err != nil {
					return nil, err
				}
				group.Swatches = append(group.Swatches, swatch)
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func newSwatch(label, value string) (Swatch, error) {
	c, err := colors.Parse(value)
	if err != nil {
		return Swatch{}, fmt.Errorf("%s: %w", label, err)
	}
	return Swatch{
		Label: label,
		Value: value,
		Hex:   c.Hex(),
		Text:  c.ContrastText(),
	}, nil
}
