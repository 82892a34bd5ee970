package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
)

var descColumn string

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Descriptive statistics for one numeric column",
	Long: `Computes count, sum, mean, median, mode, population variance and standard
deviation, range, min, max, sample skewness and excess kurtosis, quartiles,
IQR, RMS, sum of squares and Tukey outliers. Non-numeric cells are excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := analysis.Request{Kind: analysis.KindDescribe, Column: descColumn}
		return runAnalysis(cmd, args[0], req, analysisOptions())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descColumn, "column", "c", "", "column name or 0-based index")
	_ = describeCmd.MarkFlagRequired("column")
}
