package main

import (
	"fmt"

	"github.com/arthur-debert/methodlog/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Set via ldflags at release time
var (
	version = "dev"
	commit  = "none"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "methodlog",
		Short: "Operator tooling for rule-based method-call logging",
		Long: `methodlog inspects and generates configuration for the methodlog
library, which logs method calls in a running program according to
hot-reloadable rules.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(genConfigCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("methodlog version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
	},
}
