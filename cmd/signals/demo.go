package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/signals/pkg/playground"
)

var scenarioPath string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted observer-lifecycle demo",
	Long: `Run a scenario against a multicast registry and print the trace:
registrations, removals, event deliveries, and the silent pruning of
listeners whose owning reference was dropped.

Without --scenario the built-in lifecycle scenario is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario := playground.Default()
		if scenarioPath != "" {
			loaded, err := playground.Load(scenarioPath)
			if err != nil {
				return err
			}
			scenario = loaded
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderTitle(scenario.Title))

		runner := playground.NewRunner(func(ev playground.TraceEvent) {
			fmt.Fprintln(out, renderTrace(ev))
		})
		runner.Run(scenario)

		fmt.Fprintln(out)
		return renderSummary(runner)
	},
}

func init() {
	demoCmd.Flags().StringVar(&scenarioPath, "scenario", "", "TOML scenario file to run instead of the built-in one")
}
