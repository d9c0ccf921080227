package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/buddykit/buddy"
	"github.com/joshuapare/buddykit/internal/format"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printInfo("buddyctl %s\n", version)
		printInfo("  commit: %s\n", commit)
		printInfo("  built: %s\n", date)
		printInfo("  header: %d bytes, min class %d\n", buddy.HeaderSize, format.MinClass())
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(versionCmd)
}
