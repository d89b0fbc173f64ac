package core

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a linear RGB color. Channels are not clamped and may exceed 1
// until the color is quantized for display.
type Color struct {
	R, G, B float32
}

// Named colors
var (
	Black   = Color{0, 0, 0}
	White   = Color{1, 1, 1}
	Red     = Color{1, 0, 0}
	Green   = Color{0, 1, 0}
	Blue    = Color{0, 0, 1}
	Yellow  = Color{1, 1, 0}
	Cyan    = Color{0, 1, 1}
	Magenta = Color{1, 0, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Multiply returns the color scaled by a light intensity
func (c Color) Multiply(intensity float32) Color {
	return Color{c.R * intensity, c.G * intensity, c.B * intensity}
}

// RGBA8 quantizes the color to 8-bit channels. Each channel is mapped from [0,1]
// to [0,255], clamped and truncated.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: 255,
	}
}

// ColorFromRGBA converts an 8-bit color back to the [0,1] range
func ColorFromRGBA(rgba color.RGBA) Color {
	return Color{
		R: Lerp(float32(rgba.R), 0, 255, 0, 1),
		G: Lerp(float32(rgba.G), 0, 255, 0, 1),
		B: Lerp(float32(rgba.B), 0, 255, 0, 1),
	}
}

func channel8(value float32) uint8 {
	scaled := Lerp(value, 0, 1, 0, 255)
	if math32.IsNaN(scaled) || scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// Lerp maps x from the range [x0, x1] onto [y0, y1]
func Lerp(x, x0, x1, y0, y1 float32) float32 {
	return y0 + (x-x0)*((y1-y0)/(x1-x0))
}
