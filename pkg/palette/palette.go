// Package palette assigns deterministic, distinguishable colors.
//
// Two independent schemes are provided, both pure functions of an index:
//
//   - [Rainbow] walks the hue circle in golden-ratio steps. It is used for
//     repeat intervals, whose count is not known in advance: consecutive
//     colors land far apart and no prefix of the walk clusters.
//   - [StateColors] sweeps a fixed blue-to-red gradient over the ordered
//     states of a profile HMM, with the flanking N and C states in grey.
//
// Colors are [colorful.Color] values with channels in [0, 1]. [HTML] renders
// them as #rrggbb strings.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

const (
	rainbowSaturation = 0.5
	rainbowValue      = 1.0
)

// golden is the golden ratio, (1+√5)/2.
var golden = (1 + math.Sqrt(5)) / 2

// Hue returns the i-th hue of the golden-ratio walk, in [0, 1).
func Hue(i int) float64 {
	h := math.Mod(float64(i)*golden, 1)
	if h < 0 {
		h++
	}
	return h
}

// Rainbow returns the color for the i-th repeat of a track.
func Rainbow(i int) colorful.Color {
	return HSV(float64(i)*golden, rainbowSaturation, rainbowValue)
}

// HSV converts a hue (in turns; whole turns wrap) plus saturation and value
// to RGB with the six-sector formulation. Every intermediate is rounded to
// float64 explicitly, so the channels [HTML] truncates do not depend on
// fused multiply-add.
func HSV(h, s, v float64) colorful.Color {
	if s == 0 {
		return colorful.Color{R: v, G: v, B: v}
	}
	h6 := float64(h * 6)
	sector := math.Floor(h6)
	f := float64(h6 - sector)
	p := float64(v * float64(1-s))
	q := float64(v * float64(1-float64(s*f)))
	t := float64(v * float64(1-float64(s*float64(1-f))))
	switch int(math.Mod(sector, 6)+6) % 6 {
	case 0:
		return colorful.Color{R: v, G: t, B: p}
	case 1:
		return colorful.Color{R: q, G: v, B: p}
	case 2:
		return colorful.Color{R: p, G: v, B: t}
	case 3:
		return colorful.Color{R: p, G: q, B: v}
	case 4:
		return colorful.Color{R: t, G: p, B: v}
	default:
		return colorful.Color{R: v, G: p, B: q}
	}
}

// HTML formats c as #rrggbb. Channels are truncated, not rounded. Colors
// parsed from hex text may not survive truncation; write those with
// [colorful.Color.Hex], which rounds.
func HTML(c colorful.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// HSVToHTML is shorthand for HTML(HSV(h, s, v)).
func HSVToHTML(h, s, v float64) string {
	return HTML(HSV(h, s, v))
}

func channel(c float64) int {
	return int(float64(min(1, max(0, c)) * 255))
}

// named holds the few color names accepted in configuration files.
var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"grey":      "#808080",
	"gray":      "#808080",
	"lightgrey": "#d3d3d3",
	"lightgray": "#d3d3d3",
	"darkgrey":  "#a9a9a9",
	"darkgray":  "#a9a9a9",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
}

// Parse accepts a #rrggbb hex string or one of a handful of color names.
func Parse(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[key]; ok {
		key = hex
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for package-level
// defaults.
func MustParse(s string) colorful.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
