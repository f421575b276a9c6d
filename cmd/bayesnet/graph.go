package main

import (
	"fmt"

	"github.com/michal-shasha/bayesnet/internal/presentation/graph"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/registry"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [network]",
	Short: "Export the network as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the network. With --query the
query variable, the observed variables and the elimination order are highlighted.`,
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

		var overlay *graph.GraphOverlay
		if text, _ := cmd.Flags().GetString("query"); text != "" {
			q, err := query.ParseProbability(text)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFor(q)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(net, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("query", "", `Probability query to highlight, e.g. "P(B=T|J=T) A-E"`)
}
