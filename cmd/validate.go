package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/jpegsim-cli/internal/hasher"
	"github.com/AnyUserName/jpegsim-cli/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a jpegsim manifest and check referenced files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	baseDir := filepath.Join(filepath.Dir(manifestPath), m.BasePath)
	errors := validateManifest(m, baseDir)

	if len(errors) == 0 {
		fmt.Fprintln(w, "  ✓ Manifest is valid")
		fmt.Fprintf(w, "  ✓ %d assets, all files present and matching\n", m.Stats.TotalAssets)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	// Check version.
	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if m.Settings.Factor < 0 || m.Settings.Factor > 1 {
		errs = append(errs, fmt.Sprintf("settings.factor out of range: %g", m.Settings.Factor))
	}

	keys := make([]string, 0, len(m.Assets))
	for key := range m.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	for _, key := range keys {
		asset := m.Assets[key]
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}

		out := asset.Output
		if out.Format == "" {
			errs = append(errs, fmt.Sprintf("asset %q: empty output format", key))
		}
		if out.Width <= 0 || out.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid output dimensions %dx%d",
				key, out.Width, out.Height))
		}
		if out.Width > asset.Original.Width || out.Height > asset.Original.Height {
			errs = append(errs, fmt.Sprintf("asset %q: output %dx%d larger than original %dx%d",
				key, out.Width, out.Height, asset.Original.Width, asset.Original.Height))
		}
		if out.Pixels == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing pixel digest", key))
		}
		if m.Settings.Factor > 0 && asset.TableDC < 1 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid table DC %d", key, asset.TableDC))
		}
		if out.Hash == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing hash", key))
		}
		if out.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing path", key))
			continue
		}

		// Check duplicate paths.
		if other, ok := seenPaths[out.Path]; ok {
			errs = append(errs, fmt.Sprintf("asset %q: path %q already used by %q", key, out.Path, other))
		}
		seenPaths[out.Path] = key

		// Check file exists and matches.
		fullPath := filepath.Join(baseDir, out.Path)
		f, err := os.Open(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: file not found: %s", key, out.Path))
			continue
		}
		info, err := f.Stat()
		if err == nil && out.Size > 0 && info.Size() != out.Size {
			errs = append(errs, fmt.Sprintf("asset %q: size mismatch: manifest=%d, disk=%d",
				key, out.Size, info.Size()))
		}
		if out.Hash != "" {
			sum, err := hasher.ContentHashReader(f, len(out.Hash))
			switch {
			case err != nil:
				errs = append(errs, fmt.Sprintf("asset %q: hash %s: %v", key, out.Path, err))
			case sum != out.Hash:
				errs = append(errs, fmt.Sprintf("asset %q: hash mismatch: manifest=%s, disk=%s",
					key, out.Hash, sum))
			}
		}
		f.Close()
	}

	// Verify stats consistency.
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	var outBytes int64
	for _, a := range m.Assets {
		outBytes += a.Output.Size
	}
	if m.Stats.TotalOutputBytes != outBytes {
		errs = append(errs, fmt.Sprintf("stats.total_output_bytes mismatch: %d != %d", m.Stats.TotalOutputBytes, outBytes))
	}

	return errs
}
