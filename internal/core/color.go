package core

import "fmt"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility, except ColorRGB
// which tells the renderer to use the cell's RGB value instead.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorRGB
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Named colors used by the deep-sea scenes.
var (
	RGBCyan      = RGB{0x00, 0xFF, 0xFF}
	RGBLightBlue = RGB{0xAD, 0xD8, 0xE6}
	RGBSkyBlue   = RGB{0x87, 0xCE, 0xEB}
	RGBOrange    = RGB{0xFF, 0xA5, 0x00}
	RGBDeepSea   = RGB{0x00, 0x1A, 0x33}
)

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lerp linearly interpolates from c to other. t is clamped to [0, 1].
func (c RGB) Lerp(other RGB, t float64) RGB {
	t = ClampF(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{
		R: mix(c.R, other.R),
		G: mix(c.G, other.G),
		B: mix(c.B, other.B),
	}
}

// Over composites c with the given alpha over a background color.
func (c RGB) Over(bg RGB, alpha float64) RGB {
	return bg.Lerp(c, alpha)
}
