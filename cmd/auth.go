// Package cmd implements the command-line interface for afro.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authCmd.SetOut(os.Stdout)
}

// authCmd manages the stored AfroRhythm session credential.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the AfroRhythm session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token and verify it",
	Run: func(cmd *cobra.Command, args []string) {
		input := survey.Password{
			Message: "AfroRhythm API token:",
		}
		var token string
		handleErr(survey.AskOne(&input, &token))

		if token == "" {
			handleErr(errors.New("empty token"))
		}

		handleErr(auth.SetToken(token))

		session, err := api.NewClient().Me()
		if err != nil {
			// Do not keep a credential that the API rejected.
			_ = auth.DeleteToken()
			handleErr(fmt.Errorf("token rejected: %w", err))
		}

		fmt.Printf(
			"%s Signed in as %s\n",
			icon.Get(icon.Success),
			style.Fg(color.Purple)(session.Username),
		)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session credential",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s Signed out\n", icon.Get(icon.Success))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Run: func(cmd *cobra.Command, args []string) {
		if !auth.HasToken() {
			cmd.Println("Not signed in.")
			return
		}

		session, err := api.NewClient().Me()
		if err != nil {
			cmd.Printf("%s Stored token is invalid: %v\n", icon.Get(icon.Warning), err)
			return
		}

		cmd.Printf(
			"%s Signed in as %s (user %d)\n",
			icon.Get(icon.Success),
			style.Fg(color.Purple)(session.Username),
			session.UserID,
		)
	},
}
