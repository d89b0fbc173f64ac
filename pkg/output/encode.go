package output

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ErrUnknownFormat is returned for unsupported image formats
var ErrUnknownFormat = errors.New("unknown image format")

// Formats lists the supported encodings
var Formats = []Format{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF}

// ParseFormat accepts a format name or a file extension with or without the dot
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(name), ".") {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", format, err)
	}
	return nil
}

// Downsample shrinks img by factor in both dimensions. Rendering at factor×
// the target size and downsampling smooths edges.
func Downsample(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	bounds := img.Bounds()
	width := uint(bounds.Dx() / factor)
	height := uint(bounds.Dy() / factor)
	return resize.Resize(width, height, img, resize.Bilinear)
}

// Animation collects frames for an animated GIF
type Animation struct {
	Delay  int // Delay between frames in 100ths of a second
	frames *gif.GIF
}

// NewAnimation creates an empty looping animation
func NewAnimation(delay int) *Animation {
	return &Animation{
		Delay:  delay,
		frames: &gif.GIF{LoopCount: 0},
	}
}

// AddFrame quantizes img to the web palette and appends it
func (a *Animation) AddFrame(img image.Image) {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.WebSafe)
	draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

	a.frames.Image = append(a.frames.Image, paletted)
	a.frames.Delay = append(a.frames.Delay, a.Delay)
}

// Len returns the number of frames added
func (a *Animation) Len() int {
	return len(a.frames.Image)
}

// Encode writes the animation as a GIF
func (a *Animation) Encode(w io.Writer) error {
	if a.Len() == 0 {
		return errors.New("animation has no frames")
	}
	if err := gif.EncodeAll(w, a.frames); err != nil {
		return fmt.Errorf("error encoding animation: %w", err)
	}
	return nil
}
