package dct

import (
	"math"
	"testing"

	"github.com/AnyUserName/jpegsim-cli/internal/quant"
	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

const eps = 1e-9

func flat(v float64) Block {
	var b Block
	for x := range b {
		for y := range b[x] {
			b[x][y] = v
		}
	}
	return b
}

func pattern() Block {
	var b Block
	for x := range b {
		for y := range b[x] {
			b[x][y] = float64((x*37+y*91)%256) - 100
		}
	}
	return b
}

func TestForward_FlatBlockIsDCOnly(t *testing.T) {
	d := Forward(flat(10))
	for u := range d {
		for v := range d[u] {
			want := 0.0
			if u == 0 && v == 0 {
				want = 80 // ¼ · ½ · 64 · 10
			}
			if math.Abs(d[u][v]-want) > eps {
				t.Errorf("D[%d][%d] = %v, want %v", u, v, d[u][v], want)
			}
		}
	}
}

func TestForward_SingleFrequency(t *testing.T) {
	// A first-harmonic ramp along x lands entirely in D[1][0]; along y in D[0][1].
	var bx, by Block
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			bx[x][y] = math.Cos(float64(2*x+1) * math.Pi / 16)
			by[x][y] = math.Cos(float64(2*y+1) * math.Pi / 16)
		}
	}
	want := 4 * math.Sqrt2
	dx, dy := Forward(bx), Forward(by)
	for u := range dx {
		for v := range dx[u] {
			wx, wy := 0.0, 0.0
			if u == 1 && v == 0 {
				wx = want
			}
			if u == 0 && v == 1 {
				wy = want
			}
			if math.Abs(dx[u][v]-wx) > eps {
				t.Errorf("x-ramp D[%d][%d] = %v, want %v", u, v, dx[u][v], wx)
			}
			if math.Abs(dy[u][v]-wy) > eps {
				t.Errorf("y-ramp D[%d][%d] = %v, want %v", u, v, dy[u][v], wy)
			}
		}
	}
}

func TestInverse_DCOnly(t *testing.T) {
	var d Block
	d[0][0] = 8
	b := Inverse(d)
	for x := range b {
		for y := range b[x] {
			if math.Abs(b[x][y]-1) > eps {
				t.Fatalf("B[%d][%d] = %v, want 1", x, y, b[x][y])
			}
		}
	}
}

func TestRoundTrip_Exact(t *testing.T) {
	src := pattern()
	got := Inverse(Forward(src))
	for x := range got {
		for y := range got[x] {
			if math.Abs(got[x][y]-src[x][y]) > 1e-9 {
				t.Fatalf("(%d,%d): %v != %v", x, y, got[x][y], src[x][y])
			}
		}
	}
}

func TestForward_PreservesEnergy(t *testing.T) {
	src := pattern()
	d := Forward(src)
	var es, ed float64
	for x := range src {
		for y := range src[x] {
			es += src[x][y] * src[x][y]
			ed += d[x][y] * d[x][y]
		}
	}
	if math.Abs(es-ed) > 1e-6*es {
		t.Errorf("energy %v vs %v", es, ed)
	}
}

func TestForward_DoesNotMutateInput(t *testing.T) {
	src := pattern()
	keep := src
	_ = Forward(src)
	_ = Inverse(src)
	_ = Quantize(src, quant.Base)
	if src != keep {
		t.Error("input block changed")
	}
}

func TestQuantize(t *testing.T) {
	var d Block
	d[0][0] = 37   // 37/16 = 2.31 -> 32
	d[0][1] = -24  // -24/11 = -2.18 -> -22
	d[7][7] = 49.5 // 49.5/99 = 0.5 -> rounds away from zero -> 99
	d[3][3] = -14  // -14/29 -> 0
	d[1][0] = -18  // -18/12 = -1.5 -> -24
	q := Quantize(d, quant.Base)
	checks := []struct {
		u, v int
		want float64
	}{
		{0, 0, 32}, {0, 1, -22}, {7, 7, 99}, {3, 3, 0}, {1, 0, -24}, {5, 5, 0},
	}
	for _, c := range checks {
		if q[c.u][c.v] != c.want {
			t.Errorf("Q[%d][%d] = %v, want %v", c.u, c.v, q[c.u][c.v], c.want)
		}
	}
}

func TestCodeBlock_UnitTableRMSBound(t *testing.T) {
	// Rounding each coefficient to an integer moves at most 0.5 per
	// coefficient; the transform is orthonormal so RMS error <= 0.5.
	c := &Coder{Table: quant.Build(0, quant.Unit)}
	src := pattern()
	got := c.CodeBlock(src)
	var se float64
	for x := range got {
		for y := range got[x] {
			e := got[x][y] - src[x][y]
			se += e * e
		}
	}
	if rms := math.Sqrt(se / 64); rms > 0.5 {
		t.Errorf("rms error %v > 0.5", rms)
	}
}

func TestCodeBlock_LevelShiftMidGreyExact(t *testing.T) {
	for _, f := range []float64{0, 0.37, 1} {
		c := &Coder{Table: quant.Build(f, quant.Linear), LevelShift: 128}
		got := c.CodeBlock(flat(128))
		for x := range got {
			for y := range got[x] {
				if math.Abs(got[x][y]-128) > eps {
					t.Fatalf("factor %v (%d,%d) = %v", f, x, y, got[x][y])
				}
			}
		}
	}
}

func TestCodeBlock_UncenteredDCDrift(t *testing.T) {
	// DC of a 128 block is 1024; at c=1 the step is 336 and 1024 -> 1008.
	c := &Coder{Table: quant.Build(1, quant.Linear)}
	got := c.CodeBlock(flat(128))
	if math.Abs(got[3][4]-126) > eps {
		t.Errorf("got %v, want 126", got[3][4])
	}
}

func TestCodePlane_OddSizes(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {7, 13}, {10, 10}, {8, 8}, {17, 3}} {
		w, h := dims[0], dims[1]
		p := raster.NewPlane(w, h)
		for i := range p.Pix {
			p.Pix[i] = float64(i % 251)
		}
		keep := p.Clone()
		c := &Coder{Table: quant.Build(0.5, quant.Linear), LevelShift: 128}
		out := c.CodePlane(p)
		if out.Width != w || out.Height != h || len(out.Pix) != w*h {
			t.Fatalf("%dx%d: got %dx%d (%d samples)", w, h, out.Width, out.Height, len(out.Pix))
		}
		for i := range p.Pix {
			if p.Pix[i] != keep.Pix[i] {
				t.Fatalf("%dx%d: input mutated at %d", w, h, i)
			}
		}
	}
}

func TestCodePlane_PaddingModes(t *testing.T) {
	// 10x10 flat 200: the right and bottom tiles overhang by 6 samples.
	p := raster.NewPlane(10, 10)
	for i := range p.Pix {
		p.Pix[i] = 200
	}
	table := quant.Build(0, quant.Linear)

	edge := (&Coder{Table: table, Padding: EdgeReplicate, LevelShift: 128}).CodePlane(p)
	for i, v := range edge.Pix {
		if math.Abs(v-200) > eps {
			t.Fatalf("edge replicate: sample %d = %v, want 200", i, v)
		}
	}

	zero := (&Coder{Table: table, Padding: ZeroFill, LevelShift: 128}).CodePlane(p)
	var worst float64
	for _, v := range zero.Pix {
		worst = math.Max(worst, math.Abs(v-200))
	}
	if worst < 0.5 {
		t.Errorf("zero fill left the border intact (max deviation %v)", worst)
	}
	// The top-left tile is fully in bounds and unaffected by padding.
	if math.Abs(zero.At(3, 3)-200) > eps {
		t.Errorf("interior tile changed: %v", zero.At(3, 3))
	}
}

func TestCodePlane_EdgeReplicateMatchesPaddedPlane(t *testing.T) {
	// Coding a 5x3 plane must equal coding its explicit 8x8 edge-extended
	// version and cropping.
	small := raster.NewPlane(5, 3)
	for i := range small.Pix {
		small.Pix[i] = float64(i * 13 % 256)
	}
	big := raster.NewPlane(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			big.Set(x, y, small.Clamped(x, y))
		}
	}
	c := &Coder{Table: quant.Build(0.2, quant.Linear), LevelShift: 128}
	a, b := c.CodePlane(small), c.CodePlane(big)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if math.Abs(a.At(x, y)-b.At(x, y)) > eps {
				t.Errorf("(%d,%d): %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
}

func TestParsePadding(t *testing.T) {
	for in, want := range map[string]Padding{"edge": EdgeReplicate, "Replicate": EdgeReplicate, "zero": ZeroFill, "zerofill": ZeroFill} {
		got, err := ParsePadding(in)
		if err != nil || got != want {
			t.Errorf("ParsePadding(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePadding("mirror"); err == nil {
		t.Error("expected error")
	}
}

func BenchmarkCodePlane_512(b *testing.B) {
	p := raster.NewPlane(512, 512)
	for i := range p.Pix {
		p.Pix[i] = float64(i % 256)
	}
	c := &Coder{Table: quant.Build(0.5, quant.Linear), LevelShift: 128}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.CodePlane(p)
	}
}
