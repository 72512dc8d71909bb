package utility

import (
	"fmt"
	"image/color"
	"math/rand"
)

// RandomColorHex returns a #rrggbb colour with every channel kept away from the
// extremes so targets stay visible against both the wall and the sky.
func RandomColorHex() string {
	r := rand.Intn(248) + 4
	g := rand.Intn(248) + 4
	b := rand.Intn(248) + 4
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ParseColorHex reads a #rrggbb string into an opaque colour.
func ParseColorHex(s string) (color.RGBA, bool) {
	var r, g, b uint8
	if len(s) != 7 {
		return color.RGBA{}, false
	}
	if n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}
