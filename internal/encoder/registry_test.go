package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func makeNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 99, A: 255})
		}
	}
	return img
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	for in, want := range map[string]string{
		"png": "png", "PNG": "png", ".jpg": "jpeg", "jpeg": "jpeg",
		"tif": "tiff", "tiff": "tiff", "bmp": "bmp",
	} {
		enc := r.Get(in)
		require.NotNilf(t, enc, "format %q", in)
		assert.Equal(t, want, enc.Format())
	}
	assert.Nil(t, r.Get("webp"))
}

func TestRegistry_ForPath(t *testing.T) {
	r := NewRegistry()
	enc, err := r.ForPath("out/photo.TIF")
	require.NoError(t, err)
	assert.Equal(t, "tiff", enc.Format())

	_, err = r.ForPath("noext")
	assert.Error(t, err)
	_, err = r.ForPath("a.gif")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestRegistry_Available(t *testing.T) {
	assert.Equal(t, []string{"png", "tiff", "bmp", "jpeg"}, NewRegistry().Available())
}

func TestLosslessEncoders_RoundTrip(t *testing.T) {
	src := makeNRGBA(5, 3)
	decoders := map[string]func([]byte) (image.Image, error){
		"bmp":  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		"tiff": func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	}
	r := NewRegistry()
	for format, decode := range decoders {
		enc := r.Get(format)
		require.True(t, enc.Lossless())
		data, err := enc.Encode(src, 0)
		require.NoError(t, err, format)
		img, err := decode(data)
		require.NoError(t, err, format)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				r1, g1, b1, _ := img.At(x, y).RGBA()
				r2, g2, b2, _ := src.At(x, y).RGBA()
				assert.Equalf(t, [3]uint32{r2, g2, b2}, [3]uint32{r1, g1, b1}, "%s pixel (%d,%d)", format, x, y)
			}
		}
	}
}

func TestJPEG_Lossy(t *testing.T) {
	enc := JPEG()
	assert.False(t, enc.Lossless())
	assert.Equal(t, "jpg", enc.Extension())
	data, err := enc.Encode(makeNRGBA(16, 16), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])

	// Quality changes the output.
	low, err := enc.Encode(makeNRGBA(16, 16), 10)
	require.NoError(t, err)
	assert.NotEqual(t, data, low)
}

func TestPNG_RoundTrip(t *testing.T) {
	src := makeNRGBA(7, 4)
	data, err := PNG().Encode(src, 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 7; x++ {
			assert.Equal(t, color.NRGBAModel.Convert(src.At(x, y)), color.NRGBAModel.Convert(img.At(x, y)))
		}
	}
}
