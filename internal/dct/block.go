// Package dct implements the 8×8 type-II DCT round trip used to model JPEG
// block artifacts.
//
// Coefficients stay real-valued: quantisation rounds each coefficient to a
// multiple of its table entry and immediately scales it back, which is all
// that is needed to reproduce the visual loss.
package dct

import (
	"math"

	"github.com/AnyUserName/jpegsim-cli/internal/quant"
)

// Size is the block edge length.
const Size = 8

// Block is an 8×8 tile indexed [x][y] in the spatial domain and [u][v]
// in the frequency domain.
type Block [Size][Size]float64

// basis[k][n] = C(k) * cos((2n+1)kπ/16), C(0) = 1/√2, else 1.
// The normalisation constants are folded in so Forward and Inverse share
// one table and stay exact inverses of each other.
var basis [Size][Size]float64

func init() {
	for k := 0; k < Size; k++ {
		ck := 1.0
		if k == 0 {
			ck = 1 / math.Sqrt2
		}
		for n := 0; n < Size; n++ {
			basis[k][n] = ck * math.Cos(float64((2*n+1)*k)*math.Pi/16)
		}
	}
}

// Forward returns D[u][v] = ¼ CuCv ΣxΣy B[x][y] cos((2x+1)uπ/16) cos((2y+1)vπ/16).
func Forward(b Block) Block {
	// Separable: rows first, then columns.
	var tmp, out Block
	for x := 0; x < Size; x++ {
		for v := 0; v < Size; v++ {
			var s float64
			for y := 0; y < Size; y++ {
				s += b[x][y] * basis[v][y]
			}
			tmp[x][v] = s
		}
	}
	for u := 0; u < Size; u++ {
		for v := 0; v < Size; v++ {
			var s float64
			for x := 0; x < Size; x++ {
				s += tmp[x][v] * basis[u][x]
			}
			out[u][v] = 0.25 * s
		}
	}
	return out
}

// Inverse returns B[x][y] = ¼ ΣuΣv CuCv D[u][v] cos((2x+1)uπ/16) cos((2y+1)vπ/16).
func Inverse(d Block) Block {
	var tmp, out Block
	for u := 0; u < Size; u++ {
		for y := 0; y < Size; y++ {
			var s float64
			for v := 0; v < Size; v++ {
				s += d[u][v] * basis[v][y]
			}
			tmp[u][y] = s
		}
	}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			var s float64
			for u := 0; u < Size; u++ {
				s += tmp[u][y] * basis[u][x]
			}
			out[x][y] = 0.25 * s
		}
	}
	return out
}

// Quantize rounds every coefficient to the nearest multiple of its table
// entry.
func Quantize(d Block, t quant.Table) Block {
	for u := 0; u < Size; u++ {
		for v := 0; v < Size; v++ {
			q := float64(t[u][v])
			d[u][v] = math.Round(d[u][v]/q) * q
		}
	}
	return d
}
