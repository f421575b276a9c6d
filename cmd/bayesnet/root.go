package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bayesnet",
	Short: "bayesnet answers exact queries over discrete Bayesian networks",
	Long: `bayesnet loads a Bayesian network (XMLBIF or YAML) and answers
conditional probability queries by variable elimination and
conditional independence queries with the Bayes-ball algorithm.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network file (.xml, .yaml, .yml); overrides the config file")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./bayesnet.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}
