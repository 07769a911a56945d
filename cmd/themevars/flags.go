// cmd/themevars/flags.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/darkmode"
	"github.com/codr1/themevars/internal/palette"
	"github.com/codr1/themevars/internal/preset"
)

// presetFlags override the config file's preset section.
type presetFlags struct {
	prefix        string
	format        string
	darkMode      string
	darkSelectors []string
	strict        bool
}

func (f *presetFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.prefix, "prefix", "", "variable name prefix (default from config, then \"tw\")")
	flags.StringVar(&f.format, "format", "", "channel format: rgb or hsl")
	flags.StringVar(&f.darkMode, "dark-mode", "", "dark mode strategy: media, selector, class, or none")
	flags.StringArrayVar(&f.darkSelectors, "dark-selector", nil, "dark mode selector for selector/class strategies (repeatable)")
	flags.BoolVar(&f.strict, "strict", false, "fail instead of warning when dark variables would be dropped")
}

func (f *presetFlags) options(cmd *cobra.Command, base preset.Options) (preset.Options, error) {
	opts := base
	flags := cmd.Flags()

	if flags.Changed("prefix") {
		opts.Prefix = f.prefix
	}
	if flags.Changed("format") {
		format, err := colors.ParseFormat(f.format)
		if err != nil {
			return preset.Options{}, err
		}
		opts.ColorFormat = format
	}
	if flags.Changed("dark-mode") {
		strategy, err := darkmode.ParseStrategy(f.darkMode)
		if err != nil {
			return preset.Options{}, err
		}
		opts.DarkMode = strategy
	}
	if flags.Changed("dark-selector") {
		opts.DarkSelectors = append([]string(nil), f.darkSelectors...)
	}
	if flags.Changed("strict") {
		opts.Strict = f.strict
	}
	return opts, nil
}

func readTheme(path string) (palette.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return palette.Theme{}, fmt.Errorf("read %s: %w", path, err)
	}
	theme, err := palette.ParseTheme(data)
	if err != nil {
		return palette.Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	return theme, nil
}

// themeName derives an output name from a theme file path: "themes/slate.yaml"
// becomes "slate".
func themeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
