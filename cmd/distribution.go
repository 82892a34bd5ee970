package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
	"github.com/KaramelBytes/statloom-cli/internal/distribution"
)

var (
	distMean   float64
	distStdDev float64
	distLambda float64
	distN      int
	distP      float64
	distMin    float64
	distMax    float64
	distFit    string
	distColumn string
)

var distributionCmd = &cobra.Command{
	Use:   "distribution <normal|poisson|binomial|uniform>",
	Short: "Probability curve of a distribution, or a normal curve fitted to a column",
	Example: `  statloom distribution normal --mean 10 --stddev 2
  statloom distribution binomial --n 20 --p 0.3
  statloom distribution normal --fit data.csv -c height`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := distribution.ParseKind(args[0])
		if err != nil {
			return err
		}
		if distFit != "" {
			if kind != distribution.Normal {
				return fmt.Errorf("--fit supports the normal distribution only")
			}
			if distColumn == "" {
				return fmt.Errorf("--fit requires --column")
			}
			req := analysis.Request{Kind: analysis.KindFit, Column: distColumn}
			return runAnalysis(cmd, distFit, req, analysisOptions())
		}

		p := distribution.DefaultParams(kind)
		f := cmd.Flags()
		if f.Changed("mean") {
			p.Mean = distMean
		}
		if f.Changed("stddev") {
			p.StdDev = distStdDev
		}
		if f.Changed("lambda") {
			p.Lambda = distLambda
		}
		if f.Changed("n") {
			p.N = distN
		}
		if f.Changed("p") {
			p.P = distP
		}
		if f.Changed("min") {
			p.Min = distMin
		}
		if f.Changed("max") {
			p.Max = distMax
		}
		rep, err := analysis.RunDistribution(kind, p)
		if err != nil {
			return err
		}
		return emit(cmd, rep)
	},
}

func init() {
	rootCmd.AddCommand(distributionCmd)
	f := distributionCmd.Flags()
	f.Float64Var(&distMean, "mean", 0, "normal: mean")
	f.Float64Var(&distStdDev, "stddev", 1, "normal: standard deviation")
	f.Float64Var(&distLambda, "lambda", 1, "poisson: rate")
	f.IntVar(&distN, "n", 10, "binomial: number of trials")
	f.Float64Var(&distP, "p", 0.5, "binomial: success probability")
	f.Float64Var(&distMin, "min", 0, "uniform: lower bound")
	f.Float64Var(&distMax, "max", 1, "uniform: upper bound")
	f.StringVar(&distFit, "fit", "", "fit a normal curve to a column of this file")
	f.StringVarP(&distColumn, "column", "c", "", "column to fit (with --fit)")
}
