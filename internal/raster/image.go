package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromImage converts any image.Image into an RGBA8 raster.
// imaging.Clone normalises every source type (paletted, YCbCr, 16-bit,
// premultiplied) into non-premultiplied 8-bit NRGBA.
func FromImage(img image.Image) Image {
	n := imaging.Clone(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	out := Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		copy(out.Pix[y*w*4:(y+1)*w*4], n.Pix[y*n.Stride:y*n.Stride+w*4])
	}
	return out
}

// ToImage wraps the raster as an *image.NRGBA sharing Pix.
func (m Image) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// Load decodes an image file, applying EXIF orientation for JPEG input.
func Load(path string) (Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("open %s: %w", path, err)
	}
	return FromImage(img), nil
}

// HasAlpha reports whether any pixel is not fully opaque.
func (m Image) HasAlpha() bool {
	for i := 3; i < len(m.Pix); i += 4 {
		if m.Pix[i] != 255 {
			return true
		}
	}
	return false
}
