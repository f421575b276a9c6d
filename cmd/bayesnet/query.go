package main

import (
	"fmt"

	"github.com/michal-shasha/bayesnet/internal/presentation/tui"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/runner"
	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <query>",
	Short: "Answer a single query",
	Long: `Answers one query against the network given by --network.

  bayesnet query -n alarm_net.xml "P(B=T|J=T,M=T) A-E"
  bayesnet query -n alarm_net.xml "B-E|J=T"

Probability answers print as probability,additions,multiplications.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		parsed, err := query.Parse(args[0])
		if err != nil {
			return err
		}

		engine, closeCache, err := a.openEngine(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer closeCache()

		styler := tui.NewStyler(interactive(cmd))
		switch parsed.Kind {
		case domain.KindIndependence:
			independent, err := engine.Independent(cmd.Context(), *parsed.Independence)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styler.Independence(runner.FormatIndependence(independent), independent))
		default:
			res, err := engine.Query(cmd.Context(), *parsed.Probability)
			if err != nil {
				return err
			}
			if err := res.Check(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styler.Probability(runner.FormatResult(res)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
