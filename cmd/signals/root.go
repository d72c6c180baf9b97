package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/signals/internal/version"
	"github.com/arthur-debert/signals/pkg/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "signals",
		Short: "A weak-reference multicast observer registry",
		Long: `signals is a thread-safe multicast delegate: a registry of callback
targets invoked as a group, where registration does not keep a target
alive and dead targets are pruned automatically. The demo command walks
through a scripted observer lifecycle so the pruning can be watched.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for signals`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("signals version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
