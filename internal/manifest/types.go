package manifest

// Manifest is the top-level output of a jpegsim build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	Settings    Settings         `json:"settings"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// Settings records the compression parameters every asset was run with.
type Settings struct {
	Factor     float64 `json:"factor"`
	Strategy   string  `json:"strategy"`
	Padding    string  `json:"padding"`
	Chroma     string  `json:"chroma"`
	LevelShift float64 `json:"level_shift"`
	Format     string  `json:"format"`
	MaxWidth   int     `json:"max_width,omitempty"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers    int   `json:"workers"`
	DurationMS int64 `json:"duration_ms"`
}

// Asset describes one source image and its degraded output.
type Asset struct {
	Original OriginalInfo `json:"original"`
	Output   Output       `json:"output"`
	// PSNR of the output against the (possibly resized) input, RGB only.
	// Omitted when the two are identical.
	PSNR         *float64 `json:"psnr_db,omitempty"`
	LumaPSNR     *float64 `json:"luma_psnr_db,omitempty"`
	LumaVariance float64  `json:"luma_block_variance"` // mean 8x8 tile variance after coding
	TableDC      int      `json:"table_dc"`            // quantisation step of the DC coefficient
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// Output is the file written for an asset.
type Output struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`   // bytes on disk
	Hash   string `json:"hash"`   // first 16 hex chars of xxhash64 of the file
	Pixels string `json:"pixels"` // xxhash64 of dimensions + RGBA pixels
	Path   string `json:"path"`   // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64   `json:"total_input_bytes"`
	TotalOutputBytes int64   `json:"total_output_bytes"`
	TotalAssets      int     `json:"total_assets"`
	MeanPSNR         float64 `json:"mean_psnr_db,omitempty"` // over assets with a finite PSNR
	MinPSNR          float64 `json:"min_psnr_db,omitempty"`
	Unchanged        int     `json:"unchanged,omitempty"` // assets identical to their input
	Failed           int     `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the default manifest name inside the output directory.
const FileName = "jpegsim.manifest.json"
