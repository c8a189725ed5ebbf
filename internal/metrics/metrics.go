// Package metrics measures how much a compression run changed an image.
package metrics

import (
	"math"

	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

// tile matches the DCT block edge.
const tile = 8

// PSNR returns the peak signal-to-noise ratio in dB between two RGBA8
// buffers of equal length, over R, G and B only. Identical inputs give
// +Inf; mismatched lengths give NaN.
func PSNR(a, b []byte) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	var se float64
	var n int
	for i := 0; i < len(a); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(a[i+c]) - float64(b[i+c])
			se += d * d
		}
		n += 3
	}
	return psnr(se, n)
}

// PlanePSNR is PSNR over two planes of 0–255 samples.
func PlanePSNR(a, b raster.Plane) float64 {
	if len(a.Pix) != len(b.Pix) || len(a.Pix) == 0 {
		return math.NaN()
	}
	var se float64
	for i := range a.Pix {
		d := a.Pix[i] - b.Pix[i]
		se += d * d
	}
	return psnr(se, len(a.Pix))
}

func psnr(se float64, n int) float64 {
	if se == 0 {
		return math.Inf(1)
	}
	mse := se / float64(n)
	return 10 * math.Log10(255*255/mse)
}

// BlockVariance returns the population variance of every 8×8 tile of p,
// in row-major tile order. Edge tiles only cover in-bounds samples.
func BlockVariance(p raster.Plane) []float64 {
	var out []float64
	for by := 0; by < p.Height; by += tile {
		for bx := 0; bx < p.Width; bx += tile {
			var sum, sq float64
			var n int
			for y := by; y < by+tile && y < p.Height; y++ {
				for x := bx; x < bx+tile && x < p.Width; x++ {
					v := p.Pix[y*p.Width+x]
					sum += v
					sq += v * v
					n++
				}
			}
			mean := sum / float64(n)
			out = append(out, math.Max(0, sq/float64(n)-mean*mean))
		}
	}
	return out
}

// MeanBlockVariance averages BlockVariance over all tiles. It falls as
// quantisation removes high-frequency detail.
func MeanBlockVariance(p raster.Plane) float64 {
	vs := BlockVariance(p)
	if len(vs) == 0 {
		return 0
	}
	var s float64
	for _, v := range vs {
		s += v
	}
	return s / float64(len(vs))
}
