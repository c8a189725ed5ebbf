// Package pipeline runs the JPEG artifact simulation: Compress degrades a
// single raster, Pipeline applies it to a directory of image files.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/AnyUserName/jpegsim-cli/internal/encoder"
	"github.com/AnyUserName/jpegsim-cli/internal/manifest"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   string // recorded in the manifest
	Factor    float64
	Options   Options
	Format    string // output format, see encoder.Registry
	Quality   int    // only used by lossy output formats
	MaxWidth  int    // downscale wider inputs first (0 = keep size)
	Workers   int
	Verbose   bool
}

// Pipeline orchestrates a batch run.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	enc      encoder.Encoder
}

// New creates a configured pipeline. It fails only for an unknown output
// format.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Format == "" {
		cfg.Format = "png"
	}
	cfg.Factor = ClampFactor(cfg.Factor)
	registry := encoder.NewRegistry()
	enc, err := registry.Lookup(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		enc:      enc,
	}, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[jpegsim] "+format+"\n", args...)
	}
}

// Run executes the full build pipeline and returns the manifest. Images
// not yet started when ctx is cancelled are skipped and Run returns
// ctx.Err().
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	start := time.Now()
	p.logf("%s, output %s", p.registry, p.enc.Format())
	if !p.enc.Lossless() {
		p.logf("warning: %s output adds its own compression artifacts", p.enc.Format())
	}

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images", len(sources))

	// Step 2: Process images in parallel. Each image is an independent
	// Compress call; nothing is shared between workers.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

dispatch:
	for i, src := range sources {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}: // acquire
		}
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			defer func() { <-sem }() // release

			p.logf("processing: %s", s.Key)
			results[idx] = processImage(s, p.cfg, p.enc)
			if r := results[idx]; r.err == nil {
				p.logf("done: %s (%s)", s.Key, formatPSNR(r.asset.PSNR))
			}
		}(i, src)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile)
	m.Settings = manifest.Settings{
		Factor:     p.cfg.Factor,
		Strategy:   p.cfg.Options.Strategy.String(),
		Padding:    p.cfg.Options.Padding.String(),
		Chroma:     p.cfg.Options.Chroma.String(),
		LevelShift: p.cfg.Options.LevelShift,
		Format:     p.enc.Format(),
		MaxWidth:   p.cfg.MaxWidth,
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[jpegsim] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[jpegsim] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:    p.cfg.Workers,
		DurationMS: time.Since(start).Milliseconds(),
	}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	return m, nil
}

func formatPSNR(v *float64) string {
	if v == nil {
		return "unchanged"
	}
	return fmt.Sprintf("%.2f dB", *v)
}
