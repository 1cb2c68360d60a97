// Package cmd implements the command-line interface for afro.
package cmd

import (
	"strings"

	"github.com/afrorhythm/afro/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

// playCmd starts playback of the best match for a query straight away.
var playCmd = &cobra.Command{
	Use:     "play <query>",
	Short:   "Search the catalog and play the best match immediately",
	Args:    cobra.MinimumNArgs(1),
	Example: "  afro play lagos nights",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := tui.Options{
			Query:    strings.Join(args, " "),
			AutoPlay: true,
		}
		handleErr(tui.Run(&options))
	},
}
