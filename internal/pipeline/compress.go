package pipeline

import (
	"math"

	"github.com/AnyUserName/jpegsim-cli/internal/colorspace"
	"github.com/AnyUserName/jpegsim-cli/internal/dct"
	"github.com/AnyUserName/jpegsim-cli/internal/quant"
	"github.com/AnyUserName/jpegsim-cli/internal/raster"
	"github.com/AnyUserName/jpegsim-cli/internal/subsample"
)

// Options selects among the compression variants. The zero value is a
// valid configuration (linear table, edge padding, 4:2:0, no centring);
// DefaultOptions adds JPEG's 128 level shift.
type Options struct {
	Strategy   quant.Strategy
	Padding    dct.Padding
	Chroma     subsample.Mode
	LevelShift float64
}

// DefaultOptions returns the configuration used by Compress.
func DefaultOptions() Options {
	return Options{
		Strategy:   quant.Linear,
		Padding:    dct.EdgeReplicate,
		Chroma:     subsample.Ratio420,
		LevelShift: 128,
	}
}

// Trace exposes intermediate results of one CompressTrace call.
type Trace struct {
	Factor float64     // clamped factor actually applied
	Table  quant.Table // zero when the run was a passthrough
	Luma   raster.Plane
}

// ClampFactor maps any input into [0,1]. NaN becomes 0.
func ClampFactor(f float64) float64 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	return f
}

// Compress degrades img as a JPEG encoder would at distortion factor f
// (0 = untouched, 1 = maximum) using DefaultOptions. DefaultOptions
// centres samples by 128 before the DCT; LevelShift: 0 transforms the
// raw samples instead.
func Compress(img raster.Image, f float64) (raster.Image, error) {
	return CompressWith(img, f, DefaultOptions())
}

// CompressWith is Compress with explicit options.
//
// Invalid input fails with raster.ErrInvalidDimensions or
// raster.ErrBufferSizeMismatch before any work is done. A factor that
// clamps to 0 returns img itself, sharing its buffer. Otherwise the
// result is a new image of the same size with alpha set to 255.
func CompressWith(img raster.Image, f float64, opts Options) (raster.Image, error) {
	out, _, err := CompressTrace(img, f, opts)
	return out, err
}

// CompressTrace is CompressWith that also reports the table used and the
// processed luma plane.
func CompressTrace(img raster.Image, f float64, opts Options) (raster.Image, Trace, error) {
	if err := img.Validate(); err != nil {
		return raster.Image{}, Trace{}, err
	}
	f = ClampFactor(f)
	if f == 0 {
		return img, Trace{}, nil
	}

	y, cb, cr := colorspace.Split(img)
	if opts.Chroma == subsample.Ratio420 {
		cb, cr = subsample.Down(cb), subsample.Down(cr)
	}

	coder := &dct.Coder{
		Table:      quant.Build(f, opts.Strategy),
		Padding:    opts.Padding,
		LevelShift: opts.LevelShift,
	}
	y = coder.CodePlane(y)
	cb = coder.CodePlane(cb)
	cr = coder.CodePlane(cr)

	if opts.Chroma == subsample.Ratio420 {
		cb = subsample.Up(cb, img.Width, img.Height)
		cr = subsample.Up(cr, img.Width, img.Height)
	}

	out := raster.Image{
		Width:  img.Width,
		Height: img.Height,
		Pix:    colorspace.Merge(y, cb, cr),
	}
	return out, Trace{Factor: f, Table: coder.Table, Luma: y}, nil
}
