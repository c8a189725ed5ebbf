package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jpegsim",
	Short: "Simulate JPEG compression artifacts on images",
	Long: `jpegsim — degrades images the way a JPEG round trip would, without
writing a JPEG bitstream.

Each image goes through YCbCr conversion, 4:2:0 chroma subsampling,
8x8 DCT quantisation and back. A single distortion factor between 0
and 1 controls how visible the blocking and ringing get.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"jpegsim %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[jpegsim] "+format+"\n", args...)
	}
}
