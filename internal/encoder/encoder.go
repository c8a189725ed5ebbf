// Package encoder writes degraded rasters to image files.
package encoder

import (
	"bytes"
	"image"
	"io"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "bmp", "tiff", "jpeg").
	Format() string

	// Encode converts the image to bytes. quality only affects lossy
	// formats (1-100, 0 = encoder default).
	Encode(img image.Image, quality int) ([]byte, error)

	// Lossless reports whether the written file reproduces the pixels
	// exactly. Lossy containers stack their own artifacts on top.
	Lossless() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// codec adapts a streaming encode function to Encoder.
type codec struct {
	format   string
	ext      string
	lossless bool
	// bytesPerPixel sizes the output buffer up front; 0 lets it grow.
	bytesPerPixel int
	encode        func(w io.Writer, img image.Image, quality int) error
}

func (c *codec) Format() string    { return c.format }
func (c *codec) Extension() string { return c.ext }
func (c *codec) Lossless() bool    { return c.lossless }

func (c *codec) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if c.bytesPerPixel > 0 {
		b := img.Bounds()
		buf.Grow(b.Dx() * b.Dy() * c.bytesPerPixel)
	}
	if err := c.encode(&buf, img, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
