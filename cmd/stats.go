package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/jpegsim-cli/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a build output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := findManifest(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadFile(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

// findManifest resolves a directory to the manifest inside it, plain or
// zstd-compressed.
func findManifest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range []string{manifest.FileName, manifest.FileName + ".zst"} {
		p := filepath.Join(path, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", manifest.FileName, path)
}

// lowPSNR is where artifacts usually dominate the picture.
const lowPSNR = 20.0

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Profile:          %s\n", m.Profile)
	st := m.Settings
	fmt.Fprintf(w, "  Settings:         factor %.2f, %s, %s padding, %s chroma, shift %g, %s\n",
		st.Factor, st.Strategy, st.Padding, st.Chroma, st.LevelShift, st.Format)
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(w, "  Duration:         %d ms\n", m.BuildInfo.DurationMS)
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed:           %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Fprintf(w, "  Size ratio:       %.1f%% of original\n", ratio)
	}
	if s.TotalAssets > s.Unchanged {
		fmt.Fprintf(w, "  PSNR:             mean %.2f dB, min %.2f dB\n", s.MeanPSNR, s.MinPSNR)
	}
	fmt.Fprintln(w)

	// PSNR histogram in 10 dB buckets.
	buckets := map[int]int{}
	for _, a := range m.Assets {
		if a.PSNR == nil {
			buckets[-1]++
			continue
		}
		buckets[int(*a.PSNR)/10*10]++
	}
	var keys []int
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fmt.Fprintln(w, "  PSNR breakdown:")
	for _, k := range keys {
		if k < 0 {
			fmt.Fprintf(w, "    unchanged  %4d assets\n", buckets[k])
			continue
		}
		fmt.Fprintf(w, "    %3d-%-3d dB %4d assets\n", k, k+10, buckets[k])
	}
	fmt.Fprintln(w)

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.Output.Path == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q has no output", key))
		}
		if a.PSNR != nil && *a.PSNR < lowPSNR {
			warnings = append(warnings, fmt.Sprintf("asset %q PSNR %.1f dB is below %.0f dB", key, *a.PSNR, lowPSNR))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
		fmt.Fprintln(w)
	}
}
