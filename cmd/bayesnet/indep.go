package main

import (
	"fmt"

	"github.com/michal-shasha/bayesnet/internal/presentation/tui"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/runner"
	"github.com/spf13/cobra"
)

// indepCmd represents the indep command
var indepCmd = &cobra.Command{
	Use:   "indep <A> <B>",
	Short: "Test whether two variables are conditionally independent",
	Long: `Runs Bayes-ball between A and B given the --given evidence.

  bayesnet indep -n alarm_net.xml J M --given A=T`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		given, _ := cmd.Flags().GetString("given")
		evidence, err := query.ParseEvidence(given)
		if err != nil {
			return err
		}

		engine, closeCache, err := a.openEngine(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer closeCache()

		q := domain.IndependenceQuery{A: args[0], B: args[1], Evidence: evidence}
		independent, err := engine.Independent(cmd.Context(), q)
		if err != nil {
			return err
		}

		styler := tui.NewStyler(interactive(cmd))
		fmt.Fprintln(cmd.OutOrStdout(), styler.Independence(runner.FormatIndependence(independent), independent))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indepCmd)
	indepCmd.Flags().String("given", "", "Observed evidence, e.g. J=T,M=F")
}
