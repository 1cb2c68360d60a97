// Package cmd implements the command-line interface for afro.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)

	notificationsReadCmd.Flags().BoolP("all", "a", false, "Mark every notification as read")

	notificationsCmd.SetOut(os.Stdout)
}

// notificationsCmd lists the user's notifications, unread first.
var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show account notifications",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		notifications := lib.Notifications()
		if len(notifications) == 0 {
			cmd.Println("No notifications.")
			return
		}

		for _, n := range notifications {
			line := fmt.Sprintf("%d  %s — %s", n.ID, style.Bold(n.Title), n.Message)
			if n.Read {
				line = style.Faint(line)
			} else {
				line = icon.Get(icon.Bell) + " " + line
			}
			cmd.Println(line)
		}
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark notifications as read",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := requireUser()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("all")) {
			handleErr(lib.MarkAllRead())
			fmt.Printf("%s All notifications marked as read\n", icon.Get(icon.Success))
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		handleErr(err)

		handleErr(lib.MarkNotificationRead(id))
		fmt.Printf("%s Notification %d marked as read\n", icon.Get(icon.Success), id)
	},
}
