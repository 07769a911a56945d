// cmd/themevars/preview.go
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
)

var (
	previewTitleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	previewSectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	previewNameStyle    = lipgloss.NewStyle().Width(16)
	previewWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
)

func newPreviewCmd(root *rootOptions) *cobra.Command {
	var flags presetFlags

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Show a theme's swatches in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, root.cfg.PresetOptions())
			if err != nil {
				return err
			}

			theme, err := readTheme(args[0])
			if err != nil {
				return err
			}
			result, err := preset.Build(theme, opts)
			if err != nil {
				return err
			}

			text, err := renderPreview(themeName(args[0]), theme, result.Warnings)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func renderPreview(name string, theme palette.Theme, warnings []string) (string, error) {
	var sections []string
	sections = append(sections, previewTitleStyle.Render(name))

	light, err := renderPalette(theme.Light)
	if err != nil {
		return "", err
	}
	if theme.IsDual() {
		sections = append(sections, previewSectionStyle.Render("light"))
	}
	sections = append(sections, light...)

	if theme.Dark != nil {
		dark, err := renderPalette(*theme.Dark)
		if err != nil {
			return "", err
		}
		sections = append(sections, previewSectionStyle.Render("dark"))
		sections = append(sections, dark...)
	}

	for _, warning := range warnings {
		sections = append(sections, previewWarningStyle.Render("warning: "+warning))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...), nil
}

func renderPalette(p palette.Palette) ([]string, error) {
	rows := make([]string, 0, p.Len())
	for _, entry := range p.Entries() {
		var swatches []string
		switch leaf := entry.Leaf.(type) {
		case palette.Single:
			swatch, err := renderSwatch(string(leaf), string(leaf))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", entry.Name, err)
			}
			swatches = append(swatches, swatch)
		case palette.Shaded:
			for _, shade := range leaf {
				swatch, err := renderSwatch(shade.Key, shade.Value)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", entry.Name, shade.Key, err)
				}
				swatches = append(swatches, swatch)
			}
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{previewNameStyle.Render(entry.Name)}, swatches...)...)
		rows = append(rows, row)
	}
	return rows, nil
}

func renderSwatch(label, value string) (string, error) {
	c, err := colors.Parse(value)
	if err != nil {
		return "", err
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(c.ContrastText())).
		Padding(0, 1)
	return style.Render(strings.TrimSpace(label)), nil
}
