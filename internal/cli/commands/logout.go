package commands

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(app, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runLogout(app *App, yes bool) error {
	sessions, err := app.Session()
	if err != nil {
		return err
	}

	if !sessions.Current().Authenticated() {
		// Signing out twice is a no-op
		fmt.Fprintln(app.Out, "Not signed in.")
		return nil
	}

	if !yes {
		prompt := promptui.Prompt{
			Label:     "Sign out",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Fprintln(app.Out, "Aborted.")
			return nil
		}
	}

	if err := sessions.SignOut(); err != nil {
		return err
	}

	fmt.Fprintln(app.Out, "✓ Signed out.")
	return nil
}
