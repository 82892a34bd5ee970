package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
)

var (
	corrX       string
	corrY       string
	corrColumns []string
	regX        string
	regY        string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate <file>",
	Short: "Correlation matrix of numeric columns, or one pair with --x/--y",
	Long: `Without --x/--y, correlates every pair of numeric columns (or --columns) and
fits a least-squares line for each pair. Rows are filtered per pair, so a
malformed cell only drops that row from the pairs that use its column.
With --x and --y, reports Pearson and Spearman coefficients and the fit of y on x.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (corrX == "") != (corrY == "") {
			return fmt.Errorf("--x and --y must be given together")
		}
		req := analysis.Request{Kind: analysis.KindMatrix, Columns: corrColumns}
		if corrX != "" {
			req = analysis.Request{Kind: analysis.KindCorrelate, X: corrX, Y: corrY}
		}
		return runAnalysis(cmd, args[0], req, analysisOptions())
	},
}

var regressCmd = &cobra.Command{
	Use:   "regress <file>",
	Short: "Ordinary least-squares regression of --y on --x",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := analysis.Request{Kind: analysis.KindRegress, X: regX, Y: regY}
		return runAnalysis(cmd, args[0], req, analysisOptions())
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVar(&corrX, "x", "", "first column of a single pair")
	correlateCmd.Flags().StringVar(&corrY, "y", "", "second column of a single pair")
	correlateCmd.Flags().StringSliceVar(&corrColumns, "columns", nil, "comma-separated columns for the matrix (default: numeric columns)")

	rootCmd.AddCommand(regressCmd)
	regressCmd.Flags().StringVar(&regX, "x", "", "independent column")
	regressCmd.Flags().StringVar(&regY, "y", "", "dependent column")
	_ = regressCmd.MarkFlagRequired("x")
	_ = regressCmd.MarkFlagRequired("y")
}
