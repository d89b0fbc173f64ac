package canvas

import (
	"image"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// FrameBuffer is an in-memory canvas. Pixels are stored row by row starting
// from the bottom row, so (0, 0) is the bottom-left corner.
type FrameBuffer struct {
	width  int
	height int
	pixels []core.Color
}

// New allocates a width×height frame buffer filled with black
func New(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (f *FrameBuffer) Width() int { return f.width }

// Height returns the canvas height in pixels
func (f *FrameBuffer) Height() int { return f.height }

// Pixel returns the color at (x, y). Coordinates outside the canvas panic.
func (f *FrameBuffer) Pixel(x, y int) core.Color {
	return f.pixels[f.index(x, y)]
}

// SetPixel stores the color at (x, y). Coordinates outside the canvas panic.
func (f *FrameBuffer) SetPixel(x, y int, color core.Color) {
	f.pixels[f.index(x, y)] = color
}

// Fill paints every pixel with color
func (f *FrameBuffer) Fill(color core.Color) {
	for i := range f.pixels {
		f.pixels[i] = color
	}
}

func (f *FrameBuffer) index(x, y int) int {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		panic("canvas: pixel out of range")
	}
	return y*f.width + x
}

// ToImage quantizes the canvas into an 8-bit image. Image row 0 is the top of
// the picture, so canvas row height-1 becomes image row 0.
func ToImage(c core.Canvas) *image.RGBA {
	width, height := c.Width(), c.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			img.SetRGBA(x, row, c.Pixel(x, y).RGBA8())
		}
	}
	return img
}
