package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/jpegsim-cli/internal/pipeline"
	"github.com/AnyUserName/jpegsim-cli/internal/quant"
)

var (
	tableFactor   float64
	tableStrategy string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the quantisation table for a distortion factor",
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().Float64VarP(&tableFactor, "factor", "f", 0.35, "distortion 0-1")
	tableCmd.Flags().StringVar(&tableStrategy, "strategy", "linear",
		"quantisation strategy: linear, quality, unit")
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, _ []string) error {
	s, err := quant.ParseStrategy(tableStrategy)
	if err != nil {
		return err
	}
	c := pipeline.ClampFactor(tableFactor)
	fmt.Fprintf(cmd.OutOrStdout(), "# %s, factor %.2f, scale %.3f\n", s, c, quant.Scale(c, s))
	fmt.Fprint(cmd.OutOrStdout(), quant.Build(c, s).String())
	return nil
}
