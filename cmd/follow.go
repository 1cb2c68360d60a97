// Package cmd implements the command-line interface for afro.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(followCmd)
	followCmd.AddCommand(followToggleCmd)

	followCmd.SetOut(os.Stdout)
}

// followCmd lists the artists the signed-in user follows.
var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "List and manage followed artists",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		follows := lib.Follows()
		if len(follows) == 0 {
			cmd.Println("Not following any artists yet.")
			return
		}

		for _, id := range follows {
			artist, err := lib.Catalog().Artist(id)
			if err != nil {
				continue
			}

			cmd.Printf(
				"%s %s (%d followers)\n",
				icon.Get(icon.Note),
				style.Fg(color.Purple)(artist.Name),
				artist.Followers,
			)
		}
	},
}

var followToggleCmd = &cobra.Command{
	Use:   "toggle <artist-id>",
	Short: "Follow or unfollow an artist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		artistID, err := strconv.ParseInt(args[0], 10, 64)
		handleErr(err)

		lib, err := requireUser()
		handleErr(err)

		artist, err := lib.Catalog().Artist(artistID)
		handleErr(err)

		handleErr(lib.ToggleFollow(artistID))

		if lib.IsFollowing(artistID) {
			fmt.Printf("%s Now following %s\n", icon.Get(icon.Success), style.Bold(artist.Name))
		} else {
			fmt.Printf("%s Unfollowed %s\n", icon.Get(icon.Success), style.Bold(artist.Name))
		}
	},
}
