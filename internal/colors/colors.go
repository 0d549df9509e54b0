// Package colors converts tag colours between hex and HSL and derives a
// readable text colour for a given background.
package colors

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// LightnessThreshold splits light backgrounds (darkened text) from dark
	// ones (lightened text).
	LightnessThreshold = 60.0
	// DefaultLightnessDiff is how far the text colour moves away from the
	// background lightness.
	DefaultLightnessDiff = 40.0
)

// ErrInvalidColor is returned for anything that is not six hex digits with
// an optional leading '#'.
var ErrInvalidColor = errors.New("invalid color format (must be hex color like #FFFFFF)")

var hexColorRegex = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// HSL holds hue in [0,360) and saturation/lightness in [0,100].
type HSL struct {
	H float64
	S float64
	L float64
}

// Valid reports whether hex is a 6-digit colour, with or without '#'.
func Valid(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

func parse(hex string) (colorful.Color, error) {
	if !Valid(hex) {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, hex, err)
	}
	return c, nil
}

// HexToHSL parses hex and converts it to HSL. Greys come back with h=0, s=0.
func HexToHSL(hex string) (HSL, error) {
	c, err := parse(hex)
	if err != nil {
		return HSL{}, err
	}
	h, s, l := c.Hsl()
	if s == 0 {
		h = 0
	}
	return HSL{H: h, S: s * 100, L: l * 100}, nil
}

// HSLToHex converts HSL back to a lowercase "#rrggbb" string. Each channel is
// rounded to the nearest integer in [0,255].
func HSLToHex(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// ContrastingColor returns a text colour for the background using the
// default lightness shift.
func ContrastingColor(background string) (string, error) {
	return ContrastingColorDiff(background, DefaultLightnessDiff)
}

// ContrastingColorDiff darkens light backgrounds and lightens dark ones by
// diff lightness points, keeping hue and saturation.
func ContrastingColorDiff(background string, diff float64) (string, error) {
	hsl, err := HexToHSL(background)
	if err != nil {
		return "", err
	}
	var l float64
	if hsl.L > LightnessThreshold {
		l = math.Max(0, hsl.L-diff)
	} else {
		l = math.Min(100, hsl.L+diff)
	}
	return HSLToHex(hsl.H, hsl.S, l), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
