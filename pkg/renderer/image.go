package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// MaxChannelValue is the largest 8-bit channel value in serialized output
const MaxChannelValue = 255

// Image is a fixed-size, row-major buffer of linear colors. The renderer
// fills it exactly once; serialization never mutates it.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates an empty image buffer
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// Row returns the pixel slice for row y. Rows are disjoint, so concurrent
// writers that own different rows need no locking.
func (img *Image) Row(y int) []core.Vec3 {
	return img.Pixels[y*img.Width : (y+1)*img.Width]
}

// WriteOptions controls color conversion during serialization
type WriteOptions struct {
	// Gamma applied before 8-bit quantization; 2.0 is the usual sqrt tone
	// mapping, values <= 1 disable correction. Whether a render wants
	// gamma is scene-dependent, so it is an explicit option rather than
	// hard-coded.
	Gamma float64
}

// convertChannel maps a linear [0,1] channel to an 8-bit value by rounding
func convertChannel(v float64) int {
	return int(math.Round(MaxChannelValue * v))
}

// toRGB converts one pixel to 8-bit channels with gamma and clamping
func toRGB(c core.Vec3, opts WriteOptions) (int, int, int) {
	if opts.Gamma > 1 {
		c = c.GammaCorrect(opts.Gamma)
	}
	c = c.Clamp(0.0, 1.0)
	return convertChannel(c.X), convertChannel(c.Y), convertChannel(c.Z)
}

// WritePPM serializes the image as a plain-text P3 PPM: a three-line
// header followed by one "R G B" line per pixel in row-major order from
// the top-left.
func (img *Image) WritePPM(w io.Writer, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", img.Width, img.Height, MaxChannelValue); err != nil {
		return fmt.Errorf("writing PPM header: %w", err)
	}

	for _, pixel := range img.Pixels {
		r, g, b := toRGB(pixel, opts)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("writing PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing PPM output: %w", err)
	}
	return nil
}

// ToRGBA converts the buffer to a stdlib image for PNG encoding
func (img *Image) ToRGBA(opts WriteOptions) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := toRGB(img.At(x, y), opts)
			out.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return out
}
