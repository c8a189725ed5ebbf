package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/jpegsim-cli/internal/colorspace"
	"github.com/AnyUserName/jpegsim-cli/internal/encoder"
	"github.com/AnyUserName/jpegsim-cli/internal/hasher"
	"github.com/AnyUserName/jpegsim-cli/internal/manifest"
	"github.com/AnyUserName/jpegsim-cli/internal/metrics"
	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: decode, fit, compress,
// encode, write.
func processImage(src Source, cfg Config, enc encoder.Encoder) processResult {
	result := processResult{key: src.Key}

	img, err := raster.Load(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}
	result.asset.Original = manifest.OriginalInfo{
		Width:    img.Width,
		Height:   img.Height,
		Format:   src.Format,
		Size:     src.Size,
		HasAlpha: img.HasAlpha(),
	}

	img = fit(img, cfg.MaxWidth)

	out, tr, err := CompressTrace(img, cfg.Factor, cfg.Options)
	if err != nil {
		result.err = fmt.Errorf("compress %s: %w", src.RelPath, err)
		return result
	}

	data, err := enc.Encode(out.ToImage(), cfg.Quality)
	if err != nil {
		result.err = fmt.Errorf("encode %s as %s: %w", src.RelPath, enc.Format(), err)
		return result
	}

	// Content hash for filename: key.<factor%>.hash.ext
	contentHash := hasher.ContentHash(data, 16)
	keyDir := filepath.Dir(src.Key)
	fileName := fmt.Sprintf("%s.%d.%s.%s",
		filepath.Base(src.Key), int(math.Round(cfg.Factor*100)), contentHash[:8], enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		result.err = fmt.Errorf("mkdir for %s: %w", relPath, err)
		return result
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	yIn, _, _ := colorspace.Split(img)
	yOut, _, _ := colorspace.Split(out)
	luma := tr.Luma
	if luma.Pix == nil {
		luma = yOut
	}

	result.asset.Output = manifest.Output{
		Format: enc.Format(),
		Width:  out.Width,
		Height: out.Height,
		Size:   int64(len(data)),
		Hash:   contentHash,
		Pixels: hasher.PixelDigest(out),
		Path:   relPath,
	}
	result.asset.PSNR = manifest.Finite(metrics.PSNR(img.Pix, out.Pix))
	result.asset.LumaPSNR = manifest.Finite(metrics.PlanePSNR(yIn, yOut))
	result.asset.LumaVariance = metrics.MeanBlockVariance(luma)
	result.asset.TableDC = tr.Table[0][0]
	return result
}

// fit downscales img to maxWidth, keeping the aspect ratio. Narrower
// images and maxWidth <= 0 leave it untouched.
func fit(img raster.Image, maxWidth int) raster.Image {
	if maxWidth <= 0 || img.Width <= maxWidth {
		return img
	}
	h := max(1, int(math.Round(float64(img.Height)*float64(maxWidth)/float64(img.Width))))
	return raster.FromImage(imaging.Resize(img.ToImage(), maxWidth, h, imaging.Lanczos))
}
