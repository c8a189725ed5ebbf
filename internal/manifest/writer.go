package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Assets:      make(map[string]Asset),
	}
}

// Finite returns a pointer to v, or nil for ±Inf and NaN, which JSON
// cannot carry.
func Finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// ComputeStats recalculates aggregate statistics from assets. Failed is
// carried over since failures have no asset entry.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalAssets = len(m.Assets)
	var psnrSum float64
	var psnrN int
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Original.Size
		s.TotalOutputBytes += a.Output.Size
		if a.PSNR == nil {
			s.Unchanged++
			continue
		}
		psnrSum += *a.PSNR
		if psnrN == 0 || *a.PSNR < s.MinPSNR {
			s.MinPSNR = *a.PSNR
		}
		psnrN++
	}
	if psnrN > 0 {
		s.MeanPSNR = psnrSum / float64(psnrN)
	}
	m.Stats = s
}

// IsCompressed reports whether path names a zstd manifest.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteJSON serializes the manifest to path. Paths ending in .zst are
// written as a zstd frame.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if IsCompressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a manifest written by WriteJSON.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if IsCompressed(path) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("decompress manifest: %w", err)
		}
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
