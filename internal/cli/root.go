// Package cli defines the Cobra command tree for the ratemy CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ratemy",
	Short: "Review-driven college recommender",
	Long: `RateMy collects college reviews and ranks colleges against what you
actually care about.

Tell it what matters in your own words ("somewhere social with good food and
strong co-op placements") and it infers weighted category preferences from
the text, combines them with per-college rating averages, and adds a semantic
bonus from each college's trending tags. Every score comes with a full
per-category breakdown.

Run 'ratemy init' in a directory to set up the review database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newInitCmd(),
		newReviewCmd(),
		newCollegesCmd(),
		newRecommendCmd(),
		newTagsCmd(),
		newSearchCmd(),
		newEmbedAllCmd(),
		newWatchCmd(),
		newExportCmd(),
		newMCPCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ratemy %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
