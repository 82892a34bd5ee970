package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
)

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List the columns of a table and whether they are numeric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, args[0], analysis.Request{Kind: analysis.KindColumns}, analysisOptions())
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
