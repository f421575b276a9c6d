package main

import (
	"fmt"
	"io"
	"os"

	"github.com/michal-shasha/bayesnet/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <input>",
	Short: "Answer every query of an input file",
	Long: `Reads an input file line by line. A line naming a network file loads it
(relative paths resolve against the input's directory); every other line is a
query against the current network:

  alarm_net.xml
  P(B=T|J=T,M=T) A-E
  B-E|J=T

Answers are written one per line to output.txt, or to --out ("-" for stdout).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")

		var out io.Writer = cmd.OutOrStdout()
		if outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer f.Close()
			out = f
		}

		var handler runner.OutputHandler
		switch format {
		case "text":
			handler = runner.NewTextHandler(out)
		case "json":
			handler = runner.NewJSONHandler(out)
		default:
			return fmt.Errorf("unknown format %q: expected text or json", format)
		}

		cache, closeCache, err := a.openCache(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCache()

		r := runner.NewRunner(
			runner.WithLogger(a.logger),
			runner.WithOutputHandler(handler),
			runner.WithEngineOptions(a.engineOptions(cache)...),
		)
		stats, err := r.RunFile(cmd.Context(), args[0])
		a.logger.Info("run finished",
			"networks", stats.Networks,
			"queries", stats.Queries,
			"failed", stats.Failed,
			"skipped", stats.Skipped,
			"out", outPath,
		)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("out", "o", "output.txt", `Output file ("-" for stdout)`)
	runCmd.Flags().String("format", "text", "Output format: text or json")
}
