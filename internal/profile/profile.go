package profile

import (
	"sort"

	"github.com/AnyUserName/jpegsim-cli/internal/dct"
	"github.com/AnyUserName/jpegsim-cli/internal/pipeline"
	"github.com/AnyUserName/jpegsim-cli/internal/quant"
	"github.com/AnyUserName/jpegsim-cli/internal/subsample"
)

// Profile is a named set of degradation parameters.
type Profile struct {
	Name     string
	Factor   float64 // distortion 0-1
	Strategy quant.Strategy
	Padding  dct.Padding
	Chroma   subsample.Mode
	Centered bool   // apply the 128 level shift
	Format   string // output format
}

// DefaultName is used when no profile is requested.
const DefaultName = "medium"

// Built-in profiles.
var profiles = map[string]Profile{
	"light": {
		Name:     "light",
		Factor:   0.1,
		Strategy: quant.Linear,
		Centered: true,
		Format:   "png",
	},
	"medium": {
		Name:     "medium",
		Factor:   0.35,
		Strategy: quant.Linear,
		Centered: true,
		Format:   "png",
	},
	"heavy": {
		Name:     "heavy",
		Factor:   0.7,
		Strategy: quant.Linear,
		Centered: true,
		Format:   "png",
	},
	// Reproduces the crudest variant: zero-padded tiles, no centring,
	// libjpeg quality curve.
	"deep-fried": {
		Name:     "deep-fried",
		Factor:   1,
		Strategy: quant.Quality,
		Padding:  dct.ZeroFill,
		Centered: false,
		Format:   "png",
	},
}

// Get returns a profile by name. Falls back to medium if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Options converts the profile into pipeline options.
func (p Profile) Options() pipeline.Options {
	opts := pipeline.Options{
		Strategy: p.Strategy,
		Padding:  p.Padding,
		Chroma:   p.Chroma,
	}
	if p.Centered {
		opts.LevelShift = 128
	}
	return opts
}
