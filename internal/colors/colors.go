// internal/colors/colors.go
package colors

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ErrInvalidColor is returned for any value that is not a recognized CSS color.
var ErrInvalidColor = errors.New("invalid color value")

// ErrInvalidFormat is returned by ParseFormat for unknown channel formats.
var ErrInvalidFormat = errors.New("invalid color format")

// Format selects the numeric channel representation of a normalized color.
type Format string

const (
	FormatRGB Format = "rgb"
	FormatHSL Format = "hsl"
)

// ParseFormat maps a user supplied format name onto a Format. The empty
// string selects FormatRGB.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatRGB:
		return FormatRGB, nil
	case FormatHSL:
		return FormatHSL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, value)
}

// Function is the CSS color function that consumes channels of this format
// together with an alpha component.
func (f Format) Function() string {
	if f == FormatHSL {
		return "hsla"
	}
	return "rgba"
}

const (
	darkTextColor  = "#000000"
	lightTextColor = "#FFFFFF"
)

// colorFunctions are the CSS functional notations accepted by Parse.
var colorFunctions = []string{"rgb(", "rgba(", "hsl(", "hsla("}

// Color is a parsed sRGB color with straight alpha.
type Color struct {
	rgb   colorful.Color
	Alpha float64
}

// Parse accepts hex (#rgb, #rgba, #rrggbb, #rrggbbaa), CSS named colors,
// rgb()/rgba() and hsl()/hsla() in both comma and space separated syntax.
// Other notations the underlying parser knows (hwb(), lab(), bare hex) are
// rejected.
func Parse(value string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if !supportedNotation(s) {
		return Color{}, ErrInvalidColor
	}

	c, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, ErrInvalidColor
	}
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Color{}, ErrInvalidColor
		}
	}
	return Color{rgb: colorful.Color{R: c.R, G: c.G, B: c.B}, Alpha: clamp(c.A, 0, 1)}, nil
}

func supportedNotation(s string) bool {
	if strings.HasPrefix(s, "#") {
		return true
	}
	for _, fn := range colorFunctions {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return isKeyword(s)
}

// isKeyword reports whether s could be a named color. Words spelled only with
// hex digits ("bad", "cafe") are left out so they are never read as bare hex.
func isKeyword(s string) bool {
	if s == "" {
		return false
	}
	hexOnly := true
	for _, ch := range s {
		if ch < 'a' || ch > 'z' {
			return false
		}
		if ch > 'f' {
			hexOnly = false
		}
	}
	return !hexOnly
}

// Normalize parses value and renders its channels in the given format.
func Normalize(value string, format Format) (string, error) {
	c, err := Parse(value)
	if err != nil {
		return "", err
	}
	return c.Channels(format), nil
}

// Channels renders the color as space separated channel values. Unknown
// formats fall back to rgb.
func (c Color) Channels(format Format) string {
	if format == FormatHSL {
		return c.HSLChannels()
	}
	return c.RGBChannels()
}

// RGBChannels renders "{r} {g} {b}" with 0-255 integer channels.
func (c Color) RGBChannels() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("%d %d %d", r, g, b)
}

// HSLChannels renders "{h} {s}% {l}%". Each component is rounded half away
// from zero on its own.
func (c Color) HSLChannels() string {
	h, s, l := c.rgb.Clamped().Hsl()
	return fmt.Sprintf("%d %d%% %d%%", int(math.Round(h)), int(math.Round(s*100)), int(math.Round(l*100)))
}

// RGB255 returns the 8-bit channels, rounded half away from zero.
func (c Color) RGB255() (r, g, b uint8) {
	cl := c.rgb.Clamped()
	return channel255(cl.R), channel255(cl.G), channel255(cl.B)
}

// Hex returns the opaque #rrggbb form of the color.
func (c Color) Hex() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ContrastText picks black or white text, whichever has the higher WCAG
// contrast ratio against the color.
func (c Color) ContrastText() string {
	bg := c.relativeLuminance()
	dark := contrastRatio(0, bg)
	light := contrastRatio(1, bg)
	if dark >= light {
		return darkTextColor
	}
	return lightTextColor
}

func (c Color) relativeLuminance() float64 {
	r, g, b := c.RGB255()
	return 0.2126*srgbToLinear(float64(r)/255) + 0.7152*srgbToLinear(float64(g)/255) + 0.0722*srgbToLinear(float64(b)/255)
}

func contrastRatio(a, b float64) float64 {
	return (math.Max(a, b) + 0.05) / (math.Min(a, b) + 0.05)
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}

func channel255(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
