// Package raster holds the in-memory image and plane types shared by the
// compression stages.
package raster

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors. Both are reported before any transform work starts.
var (
	ErrInvalidDimensions  = errors.New("invalid image dimensions")
	ErrBufferSizeMismatch = errors.New("pixel buffer size mismatch")
)

// Image is an RGBA8 raster: Pix holds R,G,B,A per pixel, row-major,
// non-premultiplied, len(Pix) == Width*Height*4.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates an opaque black image.
func New(w, h int) Image {
	img := Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

// Validate checks dimensions first, then the buffer length.
// Inputs are never truncated or padded to fit.
func (m Image) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, m.Width, m.Height)
	}
	if m.Width > math.MaxInt/4/m.Height {
		return fmt.Errorf("%w: %dx%d pixels overflow a buffer length", ErrBufferSizeMismatch, m.Width, m.Height)
	}
	if want := m.Width * m.Height * 4; len(m.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSizeMismatch, len(m.Pix), want)
	}
	return nil
}

// Offset returns the index of the R byte of pixel (x, y).
func (m Image) Offset(x, y int) int {
	return (y*m.Width + x) * 4
}

// Plane is a single channel of real-valued samples, row-major.
type Plane struct {
	Width  int
	Height int
	Pix    []float64
}

// NewPlane allocates a zeroed w×h plane.
func NewPlane(w, h int) Plane {
	return Plane{Width: w, Height: h, Pix: make([]float64, w*h)}
}

// At returns the sample at (x, y).
func (p Plane) At(x, y int) float64 {
	return p.Pix[y*p.Width+x]
}

// Set stores v at (x, y).
func (p Plane) Set(x, y int, v float64) {
	p.Pix[y*p.Width+x] = v
}

// Clamped reads (x, y) with both coordinates clamped into the plane, so
// out-of-range reads return the nearest edge sample.
func (p Plane) Clamped(x, y int) float64 {
	x = min(max(x, 0), p.Width-1)
	y = min(max(y, 0), p.Height-1)
	return p.Pix[y*p.Width+x]
}

// Clone returns a deep copy.
func (p Plane) Clone() Plane {
	c := Plane{Width: p.Width, Height: p.Height, Pix: make([]float64, len(p.Pix))}
	copy(c.Pix, p.Pix)
	return c
}
