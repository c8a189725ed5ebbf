package dct

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/jpegsim-cli/internal/quant"
	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

// Padding selects what a tile that overhangs the plane is filled with.
type Padding int

const (
	// EdgeReplicate repeats the nearest in-bounds row/column.
	EdgeReplicate Padding = iota
	// ZeroFill loads zeros. Overhanging tiles then carry a hard edge that
	// bleeds dark ringing into the last in-bounds pixels.
	ZeroFill
)

func (p Padding) String() string {
	switch p {
	case EdgeReplicate:
		return "edge"
	case ZeroFill:
		return "zero"
	}
	return fmt.Sprintf("Padding(%d)", int(p))
}

// ParsePadding accepts "edge"/"replicate" and "zero"/"zerofill".
func ParsePadding(s string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "edge", "replicate":
		return EdgeReplicate, nil
	case "zero", "zerofill":
		return ZeroFill, nil
	}
	return 0, fmt.Errorf("unknown padding %q", s)
}

// Coder runs the forward DCT, quantisation and inverse DCT over tiles.
// A Coder is read-only once built and may be shared by the planes of one
// run.
type Coder struct {
	Table   quant.Table
	Padding Padding
	// LevelShift is subtracted from every sample before the forward
	// transform and added back after the inverse. JPEG uses 128.
	LevelShift float64
}

// CodeBlock applies the lossy round trip to a single spatial block.
func (c *Coder) CodeBlock(b Block) Block {
	if c.LevelShift != 0 {
		for x := range b {
			for y := range b[x] {
				b[x][y] -= c.LevelShift
			}
		}
	}
	out := Inverse(Quantize(Forward(b), c.Table))
	if c.LevelShift != 0 {
		for x := range out {
			for y := range out[x] {
				out[x][y] += c.LevelShift
			}
		}
	}
	return out
}

// CodePlane tiles p into ceil(w/8)×ceil(h/8) blocks, codes each one and
// returns a new plane of the same size. Only in-bounds positions are
// written back; p itself is left untouched.
func (c *Coder) CodePlane(p raster.Plane) raster.Plane {
	out := raster.NewPlane(p.Width, p.Height)
	for by := 0; by < p.Height; by += Size {
		for bx := 0; bx < p.Width; bx += Size {
			blk := c.CodeBlock(c.load(p, bx, by))
			store(out, blk, bx, by)
		}
	}
	return out
}

// load reads the tile whose top-left sample is (bx, by). Block row x maps
// to plane row by+x, block column y to plane column bx+y.
func (c *Coder) load(p raster.Plane, bx, by int) Block {
	var b Block
	for x := 0; x < Size; x++ {
		py := by + x
		for y := 0; y < Size; y++ {
			px := bx + y
			if px < p.Width && py < p.Height {
				b[x][y] = p.Pix[py*p.Width+px]
				continue
			}
			if c.Padding == EdgeReplicate {
				b[x][y] = p.Clamped(px, py)
			}
		}
	}
	return b
}

func store(p raster.Plane, b Block, bx, by int) {
	for x := 0; x < Size && by+x < p.Height; x++ {
		row := (by + x) * p.Width
		for y := 0; y < Size && bx+y < p.Width; y++ {
			p.Pix[row+bx+y] = b[x][y]
		}
	}
}
