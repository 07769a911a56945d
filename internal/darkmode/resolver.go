// internal/darkmode/resolver.go
package darkmode

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy is the framework's dark mode setting.
type Strategy string

const (
	StrategyNone     Strategy = ""
	StrategySelector Strategy = "selector"
	StrategyClass    Strategy = "class"
	StrategyMedia    Strategy = "media"
)

const (
	RootSelector        = ":root"
	DefaultDarkSelector = ".dark"
	PrefersDarkQuery    = "@media (prefers-color-scheme: dark)"
)

// ErrUnknownStrategy is returned by ParseStrategy for unsupported names.
var ErrUnknownStrategy = errors.New("unknown dark mode strategy")

// ParseStrategy accepts selector, class, media and the spellings of "off"
// ("", none, false).
func ParseStrategy(value string) (Strategy, error) {
	switch strategy := Strategy(strings.ToLower(strings.TrimSpace(value))); strategy {
	case StrategySelector, StrategyClass, StrategyMedia:
		return strategy, nil
	case StrategyNone, "none", "false":
		return StrategyNone, nil
	default:
		return "", fmt.Errorf("%w: %q (want selector, class, media, or none)", ErrUnknownStrategy, value)
	}
}

// Plan says which selectors receive the light and dark variable blocks.
// MediaQuery is empty unless dark variables must be wrapped in an at-rule.
type Plan struct {
	LightSelectors []string
	DarkSelectors  []string
	MediaQuery     string
}

// EmitsDark reports whether a dark block has anywhere to go.
func (p Plan) EmitsDark() bool {
	return p.MediaQuery != "" || len(p.DarkSelectors) > 0
}

// LightKey joins the light selectors into a single rule selector.
func (p Plan) LightKey() string {
	return strings.Join(p.LightSelectors, ", ")
}

// DarkKey joins the dark selectors into a single rule selector.
func (p Plan) DarkKey() string {
	return strings.Join(p.DarkSelectors, ", ")
}

// Resolve computes the selector plan for a dark mode strategy. Custom
// selectors only apply to selector based strategies and are used verbatim.
// Unrecognized strategies emit no dark styling.
func Resolve(strategy Strategy, customSelectors []string) Plan {
	plan := Plan{LightSelectors: []string{RootSelector}}

	switch strategy {
	case StrategySelector, StrategyClass:
		if len(customSelectors) > 0 {
			plan.DarkSelectors = append([]string(nil), customSelectors...)
		} else {
			plan.DarkSelectors = []string{DefaultDarkSelector}
		}
	case StrategyMedia:
		plan.DarkSelectors = []string{RootSelector}
		plan.MediaQuery = PrefersDarkQuery
	default:
		plan.DarkSelectors = []string{}
	}
	return plan
}
