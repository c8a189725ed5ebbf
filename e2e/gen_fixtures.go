//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test: smooth
// gradients, hard edges that ring, odd sizes that need tile padding and
// translucent pixels whose alpha must survive.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "edges"), 0o755); err != nil {
		panic(err)
	}

	fixtures := map[string]*image.NRGBA{
		"gradient.jpg":        gradient(400, 225),
		"edges/checker-1.png": checkerboard(64, 64, 1),
		"edges/checker-4.png": checkerboard(64, 64, 4),
		"edges/odd-13x7.png":  checkerboard(13, 7, 3),
		"edges/stripes.bmp":   stripes(120, 80),
		"alpha.png":           alphaGradient(100, 100),
		"solid.tiff":          solid(33, 17, color.NRGBA{R: 128, G: 128, B: 128, A: 255}),
	}
	for name, img := range fixtures {
		if err := imaging.Save(img, filepath.Join(dir, name), imaging.JPEGQuality(90)); err != nil {
			panic(err)
		}
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures), dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func checkerboard(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/cell+y/cell)%2 == 1 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func stripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 230, G: 30, B: 40, A: 255}
			if (x/5)%2 == 1 {
				c = color.NRGBA{R: 20, G: 40, B: 220, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}
