package main

import (
	"fmt"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/registry"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [network]",
	Short: "Check a network file for consistency",
	Long: `Loads the network and reports every problem found: unknown parents, cycles,
tables of the wrong size and rows that do not sum to one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		path, err := a.networkPath(args)
		if err != nil {
			return err
		}

		net, err := registry.Default().Open(path)
		if err != nil {
			problems := domain.Problems(err)
			if len(problems) == 0 {
				return err
			}
			for _, p := range problems {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
			}
			return fmt.Errorf("%s: %d problem(s) found", path, len(problems))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d variables\n", net.Name(), net.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
