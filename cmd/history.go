// Package cmd implements the command-line interface for afro.
package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyClearCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")

	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the playback history, most recent first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the playback history",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := loadLibrary()
		handleErr(err)

		entries := lib.History()
		if len(entries) == 0 {
			cmd.Println("Playback history is empty.")
			return
		}

		for _, entry := range entries {
			cmd.Printf(
				"%s %s — %s %s\n",
				icon.Get(icon.Note),
				style.Bold(entry.Title),
				style.Fg(color.Purple)(entry.ArtistName),
				style.Faint("("+entry.PlayedAtDisplay()+")"),
			)
		}
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the whole playback history",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := loadLibrary()
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("force")) {
			confirm := survey.Confirm{
				Message: "Clear the whole playback history?",
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		handleErr(lib.ClearHistory())
		fmt.Printf("%s History cleared\n", icon.Get(icon.Success))
	},
}
