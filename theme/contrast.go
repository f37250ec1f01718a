package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// ForegroundDark is used on accents brighter than the luma threshold.
	ForegroundDark = "#09090b"
	// ForegroundLight is used on everything else, including the threshold itself.
	ForegroundLight = "#ffffff"

	lumaThreshold = 128.0
)

// ErrMalformedHex is returned by ParseHex for input that is not #?RRGGBB.
var ErrMalformedHex = errors.New("malformed hex color")

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// fallbackRGB is what any unparseable accent resolves to.
var fallbackRGB = RGB{R: 255, G: 255, B: 255}

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Luma returns the BT.601 brightness estimate in [0,255].
func (c RGB) Luma() float64 {
	return (299*float64(c.R) + 587*float64(c.G) + 114*float64(c.B)) / 1000
}

// Hex formats the color as lowercase #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Components formats the color as "r, g, b" for use inside rgb()/rgba().
func (c RGB) Components() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// RGBA formats the color with the given alpha.
func (c RGB) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%s, %s)", c.Components(), strconv.FormatFloat(alpha, 'f', -1, 64))
}

// ParseHex parses a 6-digit hex color with an optional leading '#'.
// Shorthand, rgb() syntax and anything else yield ErrMalformedHex.
func ParseHex(s string) (RGB, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
	}

	var out [3]uint8
	for i, pair := range m[1:] {
		v, err := strconv.ParseUint(pair, 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// ForegroundFor picks the text color for a button filled with c.
// The comparison is strictly greater-than: luma 128 gets ForegroundLight.
func ForegroundFor(c RGB) string {
	if c.Luma() > lumaThreshold {
		return ForegroundDark
	}
	return ForegroundLight
}

// Resolution is the outcome of resolving an accent color.
type Resolution struct {
	Accent     string
	RGB        RGB
	Foreground string
	// Fallback reports whether the input was malformed.
	Fallback bool
}

// Resolve never fails. Malformed input resolves to white.
func Resolve(accent string) Resolution {
	rgb, err := ParseHex(accent)
	fallback := err != nil
	if fallback {
		rgb = fallbackRGB
	}
	return Resolution{
		Accent:     rgb.Hex(),
		RGB:        rgb,
		Foreground: ForegroundFor(rgb),
		Fallback:   fallback,
	}
}
