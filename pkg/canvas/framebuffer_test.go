package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestFrameBuffer_Dimensions(t *testing.T) {
	fb := New(4, 3)
	assert.Equal(t, 4, fb.Width())
	assert.Equal(t, 3, fb.Height())
	assert.Equal(t, core.Black, fb.Pixel(3, 2))
}

func TestFrameBuffer_SetPixel(t *testing.T) {
	fb := New(4, 3)
	fb.SetPixel(1, 2, core.Red)
	fb.SetPixel(2, 1, core.Blue)

	assert.Equal(t, core.Red, fb.Pixel(1, 2))
	assert.Equal(t, core.Blue, fb.Pixel(2, 1))
	assert.Equal(t, core.Black, fb.Pixel(2, 2))
}

func TestFrameBuffer_Fill(t *testing.T) {
	fb := New(2, 2)
	fb.Fill(core.White)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, core.White, fb.Pixel(x, y))
		}
	}
}

func TestFrameBuffer_OutOfRangePanics(t *testing.T) {
	fb := New(2, 2)
	assert.Panics(t, func() { fb.Pixel(2, 0) })
	assert.Panics(t, func() { fb.SetPixel(0, -1, core.Red) })
}

func TestFrameBuffer_ImplementsCanvas(t *testing.T) {
	var _ core.Canvas = New(1, 1)
}

func TestToImage_FlipsRows(t *testing.T) {
	fb := New(2, 3)
	fb.Fill(core.White)
	fb.SetPixel(0, 0, core.Red)  // bottom-left
	fb.SetPixel(1, 2, core.Blue) // top-right

	img := ToImage(fb)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 2))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
}

func TestToImage_ClampsOverexposure(t *testing.T) {
	fb := New(1, 1)
	fb.SetPixel(0, 0, core.NewColor(1.3, -0.2, 0.5))

	assert.Equal(t, color.RGBA{255, 0, 127, 255}, ToImage(fb).RGBAAt(0, 0))
}
