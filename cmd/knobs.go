package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/jpegsim-cli/internal/dct"
	"github.com/AnyUserName/jpegsim-cli/internal/pipeline"
	"github.com/AnyUserName/jpegsim-cli/internal/profile"
	"github.com/AnyUserName/jpegsim-cli/internal/quant"
	"github.com/AnyUserName/jpegsim-cli/internal/subsample"
)

// knobs are the compression flags shared by build and compress. Empty
// strings and an unset factor defer to the profile.
type knobs struct {
	profile  string
	factor   float64
	strategy string
	padding  string
	chroma   string
	uncenter bool
}

func (k *knobs) register(c *cobra.Command) {
	c.Flags().StringVarP(&k.profile, "profile", "p", profile.DefaultName, "degradation profile")
	c.Flags().Float64VarP(&k.factor, "factor", "f", 0, "distortion 0-1, clamped (default: profile's)")
	c.Flags().StringVar(&k.strategy, "strategy", "", "quantisation strategy: linear, quality, unit")
	c.Flags().StringVar(&k.padding, "padding", "", "edge tile padding: edge, zero")
	c.Flags().StringVar(&k.chroma, "chroma", "", "chroma subsampling: 420, 444")
	c.Flags().BoolVar(&k.uncenter, "no-level-shift", false, "run the DCT on uncentred samples")
}

// resolve applies flag overrides on top of the named profile. factorSet
// reports whether --factor was given; its value is clamped to [0,1].
func (k *knobs) resolve(factorSet bool) (profile.Profile, float64, pipeline.Options, error) {
	prof := profile.Get(k.profile)
	if k.strategy != "" {
		s, err := quant.ParseStrategy(k.strategy)
		if err != nil {
			return prof, 0, pipeline.Options{}, err
		}
		prof.Strategy = s
	}
	if k.padding != "" {
		p, err := dct.ParsePadding(k.padding)
		if err != nil {
			return prof, 0, pipeline.Options{}, err
		}
		prof.Padding = p
	}
	if k.chroma != "" {
		m, err := subsample.ParseMode(k.chroma)
		if err != nil {
			return prof, 0, pipeline.Options{}, err
		}
		prof.Chroma = m
	}
	if k.uncenter {
		prof.Centered = false
	}

	factor := prof.Factor
	if factorSet {
		factor = pipeline.ClampFactor(k.factor)
	}
	return prof, factor, prof.Options(), nil
}
