package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AnyUserName/jpegsim-cli/internal/manifest"
	"github.com/AnyUserName/jpegsim-cli/internal/pipeline"
)

var (
	buildKnobs    knobs
	buildOutDir   string
	buildFormat   string
	buildQuality  int
	buildWorkers  int
	buildMaxWidth int
	buildZstd     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Degrade every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
runs each through the artifact simulation, writes the result and records
PSNR and blockiness per asset in a manifest.

Output filenames are content-addressed: <key>.<factor%>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildKnobs.register(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./jpegsim_out", "output directory")
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "output format (empty = profile default)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", 0, "quality 1-100 for lossy output formats (0 = encoder default)")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVar(&buildMaxWidth, "max-width", 0, "downscale wider images first (0 = keep size)")
	buildCmd.Flags().BoolVar(&buildZstd, "zstd", false, "write the manifest zstd-compressed")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof, factor, opts, err := buildKnobs.resolve(cmd.Flags().Changed("factor"))
	if err != nil {
		return err
	}
	format := prof.Format
	if buildFormat != "" {
		format = buildFormat
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (factor=%.2f, strategy=%s, padding=%s, chroma=%s, shift=%g)",
		prof.Name, factor, opts.Strategy, opts.Padding, opts.Chroma, opts.LevelShift)

	p, err := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof.Name,
		Factor:    factor,
		Options:   opts,
		Format:    format,
		Quality:   buildQuality,
		MaxWidth:  buildMaxWidth,
		Workers:   buildWorkers,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	m, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	name := manifest.FileName
	if buildZstd {
		name += ".zst"
	}
	if err := manifest.WriteJSON(m, filepath.Join(absOutput, name)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(cmd.OutOrStdout(), m, name, time.Since(start))
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printBuildReport(w io.Writer, m *manifest.Manifest, manifestName string, elapsed time.Duration) {
	fmt.Fprintln(w)
	if isTerminal(w) {
		fmt.Fprintln(w, "╔══════════════════════════════════════════════════╗")
		fmt.Fprintln(w, "║             jpegsim build complete               ║")
		fmt.Fprintln(w, "╚══════════════════════════════════════════════════╝")
	} else {
		fmt.Fprintln(w, "jpegsim build complete")
	}
	fmt.Fprintln(w)

	stats := m.Stats
	fmt.Fprintf(w, "  Assets:      %d\n", stats.TotalAssets)
	if stats.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d\n", stats.Failed)
	}
	fmt.Fprintf(w, "  Factor:      %.2f (%s, %s padding, %s chroma)\n",
		m.Settings.Factor, m.Settings.Strategy, m.Settings.Padding, m.Settings.Chroma)
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	if stats.TotalAssets > stats.Unchanged {
		fmt.Fprintf(w, "  PSNR:        mean %.2f dB, min %.2f dB\n", stats.MeanPSNR, stats.MinPSNR)
	}
	if stats.Unchanged > 0 {
		fmt.Fprintf(w, "  Unchanged:   %d\n", stats.Unchanged)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Fprintln(w)

	// Ten most degraded assets.
	if items := worstAssets(m, 10); len(items) > 0 {
		fmt.Fprintf(w, "  Top %d most degraded (PSNR, luma block variance):\n", len(items))
		for _, it := range items {
			fmt.Fprintf(w, "    %-40s %7.2f dB  %8.1f\n",
				truncKey(it.key, 40), *it.asset.PSNR, it.asset.LumaVariance)
		}
		fmt.Fprintln(w)
	}

	// Manifest path.
	data, _ := json.Marshal(m)
	fmt.Fprintf(w, "  Manifest:    %s (%s uncompressed)\n", manifestName, formatBytes(int64(len(data))))
	fmt.Fprintln(w)
}

type keyedAsset struct {
	key   string
	asset manifest.Asset
}

// worstAssets returns up to n assets with a finite PSNR, lowest first.
func worstAssets(m *manifest.Manifest, n int) []keyedAsset {
	var items []keyedAsset
	for key, a := range m.Assets {
		if a.PSNR != nil {
			items = append(items, keyedAsset{key, a})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if *items[i].asset.PSNR != *items[j].asset.PSNR {
			return *items[i].asset.PSNR < *items[j].asset.PSNR
		}
		return items[i].key < items[j].key
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
