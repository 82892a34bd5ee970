package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

var explainCmd = &cobra.Command{
	Use:   "explain [statistic]",
	Short: "Explain what a statistic measures and how it is computed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			tw := table.NewWriter()
			tw.AppendHeader(table.Row{"Statistic", "Formula"})
			for _, info := range stats.Catalog() {
				tw.AppendRow(table.Row{info.Name, info.Formula})
			}
			fmt.Fprintln(out, tw.RenderMarkdown())
			return nil
		}
		info, ok := stats.Explain(args[0])
		if !ok {
			return fmt.Errorf("unknown statistic %q (known: %s)", args[0], strings.Join(stats.Names(), ", "))
		}
		fmt.Fprintf(out, "%s\n\nFormula: %s\n\n%s\n", info.Name, info.Formula, info.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
