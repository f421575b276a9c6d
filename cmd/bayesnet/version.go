package main

import (
	"fmt"

	"github.com/michal-shasha/bayesnet"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bayesnet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bayesnet version %s\n", bayesnet.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
