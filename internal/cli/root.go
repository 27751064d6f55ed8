// Package cli implements the kitz command line interface.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/KenRoach/kitzV1-sub005/internal/cli.version=1.2.3"
	version = "0.5.0"
	logo    = "\n" +
		"  _    _ _\n" +
		" | | _(_) |_ ____\n" +
		" | |/ / | __|_  /\n" +
		" |   <| | |_ / /\n" +
		" |_|\\_\\_|\\__/___|\n"
)

var rootCmd = &cobra.Command{
	Use:   "kitz",
	Short: "kitz - multi-agent coordination kernel",
	Long:  color.CyanString(logo) + "\nEvent bus, agent registry, and append-only ledger for agent swarms.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(artifactsCmd)
}
