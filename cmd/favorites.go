// Package cmd implements the command-line interface for afro.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/afrorhythm/afro/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)

	favoritesCmd.SetOut(os.Stdout)
}

// favoritesCmd lists the signed-in user's favorite tracks.
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List and manage favorite tracks",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		favorites := lib.Favorites()
		if len(favorites) == 0 {
			cmd.Println("No favorite tracks yet.")
			return
		}

		for _, id := range favorites {
			track, err := lib.Catalog().Track(id)
			if err != nil {
				continue
			}

			cmd.Printf(
				"%s %s — %s (%s)\n",
				icon.Get(icon.Heart),
				style.Bold(track.Title),
				style.Fg(color.Purple)(lib.Catalog().ArtistName(track)),
				util.FormatDuration(track.Duration),
			)
		}
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <track-id>",
	Short: "Add or remove a track from the favorites",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		trackID, err := strconv.ParseInt(args[0], 10, 64)
		handleErr(err)

		lib, err := requireUser()
		handleErr(err)

		track, err := lib.Catalog().Track(trackID)
		handleErr(err)

		handleErr(lib.ToggleFavorite(trackID))

		if lib.IsFavorite(trackID) {
			fmt.Printf("%s Added %s to favorites\n", icon.Get(icon.Heart), style.Bold(track.Title))
		} else {
			fmt.Printf("%s Removed %s from favorites\n", icon.Get(icon.HeartEmpty), style.Bold(track.Title))
		}
	},
}
