package main

import (
	"fmt"

	"github.com/michal-shasha/bayesnet/internal/presentation/tui"
	"github.com/michal-shasha/bayesnet/pkg/registry"
	"github.com/spf13/cobra"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [network]",
	Short: "Print the variables and probability tables of a network",
	Long: `Prints a markdown summary of the network: every variable with its outcomes
and parents, followed by its conditional probability table. On a terminal the
markdown is rendered; otherwise it is printed as is.`,
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
			return err
		}

		markdown := tui.Describe(net)
		plain, _ := cmd.Flags().GetBool("plain")
		if plain || !interactive(cmd) {
			fmt.Fprint(cmd.OutOrStdout(), markdown)
			return nil
		}

		rendered, err := tui.NewRenderer()(markdown)
		if err != nil {
			rendered = markdown
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
