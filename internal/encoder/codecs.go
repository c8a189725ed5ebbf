package encoder

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality is used when no quality is requested.
const DefaultJPEGQuality = 95

// PNG is lossless, so the simulated artifacts are kept bit-exact.
func PNG() Encoder {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return &codec{
		format:   "png",
		ext:      "png",
		lossless: true,
		encode: func(w io.Writer, img image.Image, _ int) error {
			return enc.Encode(w, img)
		},
	}
}

// JPEG re-encodes the degraded image as a real JPEG. The file carries
// both the simulated and the encoder's own artifacts.
func JPEG() Encoder {
	return &codec{
		format: "jpeg",
		ext:    "jpg",
		encode: func(w io.Writer, img image.Image, quality int) error {
			if quality <= 0 || quality > 100 {
				quality = DefaultJPEGQuality
			}
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		},
	}
}

// BMP writes uncompressed 32-bit BMP.
func BMP() Encoder {
	return &codec{
		format:        "bmp",
		ext:           "bmp",
		lossless:      true,
		bytesPerPixel: 4,
		encode: func(w io.Writer, img image.Image, _ int) error {
			return bmp.Encode(w, img)
		},
	}
}

// TIFF writes deflate-compressed TIFF with the horizontal predictor.
func TIFF() Encoder {
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	return &codec{
		format:   "tiff",
		ext:      "tiff",
		lossless: true,
		encode: func(w io.Writer, img image.Image, _ int) error {
			return tiff.Encode(w, img, opts)
		},
	}
}
