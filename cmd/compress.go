package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/jpegsim-cli/internal/encoder"
	"github.com/AnyUserName/jpegsim-cli/internal/metrics"
	"github.com/AnyUserName/jpegsim-cli/internal/pipeline"
	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

var (
	compressKnobs   knobs
	compressQuality int
)

var compressCmd = &cobra.Command{
	Use:   "compress <input> <output>",
	Short: "Degrade a single image",
	Long: `Runs one image through the artifact simulation. The output format
follows the output file extension (png, jpg, bmp, tif).`,
	Args: cobra.ExactArgs(2),
	RunE: runCompress,
}

func init() {
	compressKnobs.register(compressCmd)
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", 0, "quality 1-100 for lossy output formats (0 = encoder default)")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	enc, err := encoder.NewRegistry().ForPath(outPath)
	if err != nil {
		return err
	}
	prof, factor, opts, err := compressKnobs.resolve(cmd.Flags().Changed("factor"))
	if err != nil {
		return err
	}

	img, err := raster.Load(inPath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	logVerbose("%s: %dx%d, profile %s, factor %.2f", inPath, img.Width, img.Height, prof.Name, factor)

	out, tr, err := pipeline.CompressTrace(img, factor, opts)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	logVerbose("table DC step %d", tr.Table[0][0])

	data, err := enc.Encode(out.ToImage(), compressQuality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	psnr := metrics.PSNR(img.Pix, out.Pix)
	if math.IsInf(psnr, 1) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: unchanged (%s)\n", outPath, formatBytes(int64(len(data))))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: PSNR %.2f dB (%s)\n", outPath, psnr, formatBytes(int64(len(data))))
	return nil
}
