// Package cli implements the Moodlet command-line interface using Cobra.
// Each subcommand maps to one engagement operation (checkin, shop, review...).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodlet",
	Short: "Moodlet - mood journaling with a companion",
	Long: `Moodlet is a local-first mood journal.
Log how you feel, keep a streak going, earn points, and dress up the
companion that grows alongside your habit. All data stays on this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
