package util

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
)

var baseColours = []string{
	"#00ff00", "#0000ff", "#ff0000", "#00ffff", "#ffff00",
	"#ff00ff", "#0080ff", "#00ff80", "#ff8000", "#ff0080",
}

var black = colorful.Color{}

// ElementColour is the drawing colour of an element slot. The base colours
// repeat with each pass darkened a little further.
func ElementColour(slot int) colorful.Color {
	c, _ := colorful.Hex(baseColours[slot%len(baseColours)])
	pass := slot / len(baseColours)
	if pass == 0 {
		return c
	}
	t := 0.2 * float64(pass)
	if t > 0.8 {
		t = 0.8
	}
	return c.BlendLab(black, t).Clamped()
}

// Palette returns the colours of the first n slots.
func Palette(n int) []colorful.Color {
	colours := make([]colorful.Color, n)
	for i := range colours {
		colours[i] = ElementColour(i)
	}
	return colours
}

// Curves that stay inside [0, 1], so interpolated boxes never overshoot.
var easings = map[string]func(float64) float64{
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
}

// Easing looks up a transition curve by name. "linear" and "" return nil,
// meaning the plain s/steps fraction.
func Easing(name string) (func(float64) float64, error) {
	if name == "" || name == "linear" {
		return nil, nil
	}
	f, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (have linear, %v)", name, EasingNames())
	}
	return f, nil
}

// EasingNames lists the non-linear curves.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
