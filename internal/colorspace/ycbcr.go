// Package colorspace converts between RGB and full-range BT.601 YCbCr.
package colorspace

import (
	"math"

	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

// ToYCbCr converts one pixel. Cb and Cr carry the +128 offset.
func ToYCbCr(r, g, b uint8) (y, cb, cr float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	y = 0.299*rf + 0.587*gf + 0.114*bf
	cb = -0.168736*rf - 0.331264*gf + 0.5*bf + 128
	cr = 0.5*rf - 0.418688*gf - 0.081312*bf + 128
	return y, cb, cr
}

// ToRGB is the inverse of ToYCbCr. Each channel is rounded to the nearest
// integer and clamped to [0,255].
func ToRGB(y, cb, cr float64) (r, g, b uint8) {
	cb -= 128
	cr -= 128
	return toByte(y + 1.402*cr),
		toByte(y - 0.344136*cb - 0.714136*cr),
		toByte(y + 1.772*cb)
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Split builds full-resolution Y, Cb and Cr planes from the raster.
// Alpha is ignored.
func Split(img raster.Image) (y, cb, cr raster.Plane) {
	n := img.Width * img.Height
	y = raster.NewPlane(img.Width, img.Height)
	cb = raster.NewPlane(img.Width, img.Height)
	cr = raster.NewPlane(img.Width, img.Height)
	pix := img.Pix
	for i := 0; i < n; i++ {
		off := i * 4
		y.Pix[i], cb.Pix[i], cr.Pix[i] = ToYCbCr(pix[off], pix[off+1], pix[off+2])
	}
	return y, cb, cr
}

// Merge recombines three planes of identical size into an RGBA8 buffer.
// Alpha is always 255.
func Merge(y, cb, cr raster.Plane) []byte {
	n := y.Width * y.Height
	pix := make([]byte, n*4)
	for i := 0; i < n; i++ {
		off := i * 4
		pix[off], pix[off+1], pix[off+2] = ToRGB(y.Pix[i], cb.Pix[i], cr.Pix[i])
		pix[off+3] = 255
	}
	return pix
}
