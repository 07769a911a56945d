// internal/preset/builder.go
package preset

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/darkmode"
	"github.com/codr1/themevars/internal/palette"
)

const (
	DefaultPrefix = "tw"
	alphaValue    = "<alpha-value>"
)

// ErrDarkVariablesDropped is returned in strict mode when a theme carries
// dark colors but the dark mode strategy gives them nowhere to go.
var ErrDarkVariablesDropped = errors.New("dark theme variables dropped: dark mode strategy emits no dark selectors")

// Options controls variable naming, channel format and dark mode placement.
type Options struct {
	// Prefix namespaces every generated variable. Empty means DefaultPrefix.
	Prefix string
	// ColorFormat selects rgb or hsl channels. Empty means rgb.
	ColorFormat colors.Format
	// DarkSelectors replaces ".dark" for selector based strategies.
	DarkSelectors []string
	// DarkMode is the framework's active dark mode strategy.
	DarkMode darkmode.Strategy
	// Strict turns the dropped dark variables warning into an error.
	Strict bool
}

// DefaultOptions mirrors the framework defaults: tw prefix, rgb channels and
// media query based dark mode.
func DefaultOptions() Options {
	return Options{
		Prefix:      DefaultPrefix,
		ColorFormat: colors.FormatRGB,
		DarkMode:    darkmode.StrategyMedia,
	}
}

// ColorFunctionMap has the shape of the source palette with every color
// replaced by an alpha aware CSS color function.
type ColorFunctionMap = palette.Palette

// Variable is one CSS custom property declaration.
type Variable struct {
	Name  string
	Value string
}

// VariableBlock is an ordered set of custom properties.
type VariableBlock []Variable

// set adds v, or replaces the value of an earlier variable with the same name
// in place. It reports whether a value was replaced.
func (b *VariableBlock) set(v Variable) bool {
	for i := range *b {
		if (*b)[i].Name == v.Name {
			(*b)[i].Value = v.Value
			return true
		}
	}
	*b = append(*b, v)
	return false
}

// Result is everything a framework integration needs to register the theme.
type Result struct {
	Colors         ColorFunctionMap
	LightVariables VariableBlock
	DarkVariables  VariableBlock
	BaseStyles     BaseStyles
	Warnings       []string
}

// Builder turns themes into presets. The zero value is not usable; call
// NewBuilder.
type Builder struct {
	logger zerolog.Logger
}

func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build is a convenience for NewBuilder(zerolog.Nop()).Build.
func Build(theme palette.Theme, opts Options) (*Result, error) {
	return NewBuilder(zerolog.Nop()).Build(theme, opts)
}

// Build normalizes every palette leaf and assembles the base style blocks.
// The first invalid color aborts the build; no partial result is returned.
func (b *Builder) Build(theme palette.Theme, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	lightVars, colorMap, replaced, err := processPalette(theme.Light, opts, "light")
	if err != nil {
		return nil, err
	}

	var darkVars VariableBlock
	if theme.Dark != nil {
		var darkReplaced []string
		darkVars, _, darkReplaced, err = processPalette(*theme.Dark, opts, "dark")
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, darkReplaced...)
	}

	plan := darkmode.Resolve(opts.DarkMode, opts.DarkSelectors)
	result := &Result{
		Colors:         colorMap,
		LightVariables: lightVars,
		DarkVariables:  darkVars,
	}

	for _, name := range replaced {
		b.logger.Warn().Str("variable", name).Msg("Variable defined twice")
		result.Warnings = append(result.Warnings, fmt.Sprintf("variable %s is defined twice, the later value wins", name))
	}

	result.BaseStyles.set(StyleBlock{
		Selector:     plan.LightKey(),
		Declarations: withColorScheme("light", lightVars),
	})

	if len(darkVars) > 0 {
		darkBlock := StyleBlock{
			Selector:     plan.DarkKey(),
			Declarations: withColorScheme("dark", darkVars),
		}
		switch {
		case !plan.EmitsDark():
			if opts.Strict {
				return nil, fmt.Errorf("%w (dark mode %q)", ErrDarkVariablesDropped, opts.DarkMode)
			}
			msg := fmt.Sprintf("%d dark variables dropped: dark mode %q emits no dark selectors", len(darkVars), opts.DarkMode)
			b.logger.Warn().
				Str("dark_mode", string(opts.DarkMode)).
				Int("dark_variables", len(darkVars)).
				Msg("Dark theme variables dropped")
			result.Warnings = append(result.Warnings, msg)
		case plan.MediaQuery != "":
			result.BaseStyles.set(StyleBlock{
				Selector: plan.MediaQuery,
				Children: []StyleBlock{darkBlock},
			})
		default:
			if result.BaseStyles.set(darkBlock) {
				b.logger.Warn().Str("selector", darkBlock.Selector).Msg("Dark block replaces light block")
				result.Warnings = append(result.Warnings, fmt.Sprintf("dark selector %q is also the light selector, the dark block wins", darkBlock.Selector))
			}
		}
	}

	return result, nil
}

func (o Options) withDefaults() (Options, error) {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	format, err := colors.ParseFormat(string(o.ColorFormat))
	if err != nil {
		return Options{}, err
	}
	o.ColorFormat = format
	return o, nil
}

// processPalette computes the variable block and color function map of one
// palette. path prefixes error messages so a failing leaf can be located.
// Variable names that collide ("a-b" next to shade b of "a") keep their first
// position and take the later value; the names are returned as replaced.
func processPalette(p palette.Palette, opts Options, path string) (VariableBlock, ColorFunctionMap, []string, error) {
	var vars VariableBlock
	var fns ColorFunctionMap
	var replaced []string
	fn := opts.ColorFormat.Function()

	for _, entry := range p.Entries() {
		switch leaf := entry.Leaf.(type) {
		case palette.Single:
			name := variableName(opts.Prefix, entry.Name)
			value, err := colors.Normalize(string(leaf), opts.ColorFormat)
			if err != nil {
				return nil, ColorFunctionMap{}, nil, fmt.Errorf("%s.%s: %w", path, entry.Name, err)
			}
			if vars.set(Variable{Name: name, Value: value}) {
				replaced = append(replaced, name)
			}
			if err := fns.Add(entry.Name, palette.Single(colorFunction(fn, name))); err != nil {
				return nil, ColorFunctionMap{}, nil, err
			}
		case palette.Shaded:
			shades := palette.Shaded{}
			for _, shade := range leaf {
				name := variableName(opts.Prefix, entry.Name, shade.Key)
				value, err := colors.Normalize(shade.Value, opts.ColorFormat)
				if err != nil {
					return nil, ColorFunctionMap{}, nil, fmt.Errorf("%s.%s.%s: %w", path, entry.Name, shade.Key, err)
				}
				if vars.set(Variable{Name: name, Value: value}) {
					replaced = append(replaced, name)
				}
				shades = append(shades, palette.Shade{Key: shade.Key, Value: colorFunction(fn, name)})
			}
			if err := fns.Add(entry.Name, shades); err != nil {
				return nil, ColorFunctionMap{}, nil, err
			}
		default:
			return nil, ColorFunctionMap{}, nil, fmt.Errorf("%s.%s: unsupported palette value %T", path, entry.Name, entry.Leaf)
		}
	}
	return vars, fns, replaced, nil
}

func variableName(prefix string, parts ...string) string {
	name := "--" + prefix
	for _, part := range parts {
		name += "-" + part
	}
	return name
}

func colorFunction(fn, variable string) string {
	return fmt.Sprintf("%s(var(%s) / %s)", fn, variable, alphaValue)
}

func withColorScheme(scheme string, vars VariableBlock) []Declaration {
	decls := make([]Declaration, 0, len(vars)+1)
	decls = append(decls, Declaration{Property: "color-scheme", Value: scheme})
	for _, v := range vars {
		decls = append(decls, Declaration{Property: v.Name, Value: v.Value})
	}
	return decls
}
