// Package subsample reduces and restores chroma plane resolution.
//
// Both directions are nearest-neighbour: a chroma sample is never
// interpolated, so every restored value is one that existed in the
// reduced plane.
package subsample

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

// Mode selects how chroma planes are reduced before block coding.
type Mode int

const (
	// Ratio420 halves chroma resolution on both axes.
	Ratio420 Mode = iota
	// Ratio444 keeps chroma at full resolution.
	Ratio444
)

func (m Mode) String() string {
	switch m {
	case Ratio420:
		return "420"
	case Ratio444:
		return "444"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "420", "4:2:0", "444" and "4:4:4".
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.TrimSpace(s), ":", "") {
	case "420":
		return Ratio420, nil
	case "444":
		return Ratio444, nil
	}
	return 0, fmt.Errorf("unknown chroma mode %q", s)
}

// Dims returns the reduced dimensions of a w×h plane.
func Dims(w, h int) (int, int) {
	return (w + 1) / 2, (h + 1) / 2
}

// Down keeps every even-offset sample. Output is ceil(w/2)×ceil(h/2); the
// source coordinate is clamped so odd sizes never read past the edge.
func Down(p raster.Plane) raster.Plane {
	sw, sh := Dims(p.Width, p.Height)
	out := raster.NewPlane(sw, sh)
	for y := 0; y < sh; y++ {
		sy := min(2*y, p.Height-1)
		row := sy * p.Width
		for x := 0; x < sw; x++ {
			sx := min(2*x, p.Width-1)
			out.Pix[y*sw+x] = p.Pix[row+sx]
		}
	}
	return out
}

// Up replicates each reduced sample over its 2×2 source block, producing
// a w×h plane.
func Up(p raster.Plane, w, h int) raster.Plane {
	out := raster.NewPlane(w, h)
	for y := 0; y < h; y++ {
		sy := min(y/2, p.Height-1)
		row := sy * p.Width
		for x := 0; x < w; x++ {
			sx := min(x/2, p.Width-1)
			out.Pix[y*w+x] = p.Pix[row+sx]
		}
	}
	return out
}
