// Package cmd implements the command-line interface for afro.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/library"
	"github.com/afrorhythm/afro/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistRenameCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	playlistCmd.AddCommand(playlistLikeCmd)

	playlistCreateCmd.Flags().StringP("description", "d", "", "Playlist description")
	playlistCreateCmd.Flags().BoolP("public", "p", false, "Make the playlist publicly visible")

	playlistRenameCmd.Flags().StringP("description", "d", "", "New playlist description")
	playlistRenameCmd.Flags().BoolP("public", "p", false, "Make the playlist publicly visible")

	playlistDeleteCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")

	playlistCmd.SetOut(os.Stdout)
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	handleErr(err)
	return id
}

// playlistCmd lists the user's playlists plus the public catalog ones.
var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "List and manage playlists",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := loadLibrary()
		handleErr(err)

		owned := lib.Playlists()
		if lib.Authenticated() {
			cmd.Println(style.Bold("Your playlists"))
			if len(owned) == 0 {
				cmd.Println(style.Faint("  (none)"))
			}
			for _, p := range owned {
				cmd.Printf("  %d  %s (%d tracks, %d likes)\n", p.ID, style.Fg(color.Purple)(p.Name), len(p.TrackIDs), p.Likes)
			}
			cmd.Println()
		}

		cmd.Println(style.Bold("Public playlists"))
		for _, p := range lib.Catalog().Playlists() {
			liked := ""
			if lib.LikesPlaylist(p.ID) {
				liked = " " + icon.Get(icon.Heart)
			}
			cmd.Printf("  %d  %s (%d tracks, %d likes)%s\n", p.ID, style.Fg(color.Purple)(p.Name), len(p.TrackIDs), p.Likes, liked)
		}
	},
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		description := lo.Must(cmd.Flags().GetString("description"))
		public := lo.Must(cmd.Flags().GetBool("public"))

		handleErr(lib.CreatePlaylist(args[0], description, public, nil))
		fmt.Printf("%s Created playlist %s\n", icon.Get(icon.Success), style.Bold(args[0]))
	},
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <playlist-id> <name>",
	Short: "Rename a playlist you own",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		description := lo.Must(cmd.Flags().GetString("description"))
		public := lo.Must(cmd.Flags().GetBool("public"))

		handleErr(lib.RenamePlaylist(parseID(args[0]), args[1], description, public))
		fmt.Printf("%s Renamed playlist to %s\n", icon.Get(icon.Success), style.Bold(args[1]))
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <playlist-id>",
	Short: "Delete a playlist you own",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		id := parseID(args[0])
		playlist, err := lib.OwnedPlaylist(id)
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("force")) {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Delete playlist %q?", playlist.Name),
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		handleErr(lib.DeletePlaylist(id))
		fmt.Printf("%s Deleted playlist %s\n", icon.Get(icon.Success), style.Bold(playlist.Name))
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <track-id>",
	Short: "Add a track to a playlist you own",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		handleErr(lib.AddTrackToPlaylist(parseID(args[0]), parseID(args[1])))
		fmt.Printf("%s Track added\n", icon.Get(icon.Success))
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <track-id>",
	Short: "Remove a track from a playlist you own",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		handleErr(lib.RemoveTrackFromPlaylist(parseID(args[0]), parseID(args[1])))
		fmt.Printf("%s Track removed\n", icon.Get(icon.Success))
	},
}

var playlistLikeCmd = &cobra.Command{
	Use:   "like <playlist-id>",
	Short: "Like or unlike a public playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		id := parseID(args[0])
		if err := lib.ToggleLikePlaylist(id); err != nil {
			if errors.Is(err, library.ErrValidation) {
				err = fmt.Errorf("playlist %d cannot be liked", id)
			}
			handleErr(err)
		}

		if lib.LikesPlaylist(id) {
			fmt.Printf("%s Playlist liked\n", icon.Get(icon.Heart))
		} else {
			fmt.Printf("%s Playlist unliked\n", icon.Get(icon.HeartEmpty))
		}
	},
}
