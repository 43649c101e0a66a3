package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schedulr-app/schedulr/internal/cli/client"
	"github.com/schedulr-app/schedulr/internal/cli/toast"
	"github.com/schedulr-app/schedulr/internal/cli/validate"
)

// NewProfileCmd creates the profile command
func NewProfileCmd(app *App) *cobra.Command {
	var name, email, oldPassword, password, passwordConfirmation string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update your profile",
		Long: `Update your name, email, or password.

Changing the password requires the current password plus a new password and
its confirmation. Fields left unset keep their current value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, app, profileFlags{
				name:                 name,
				email:                email,
				oldPassword:          oldPassword,
				password:             password,
				passwordConfirmation: passwordConfirmation,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&oldPassword, "old-password", "", "Current password (required to change password)")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringVar(&passwordConfirmation, "password-confirmation", "", "New password confirmation")

	return cmd
}

type profileFlags struct {
	name                 string
	email                string
	oldPassword          string
	password             string
	passwordConfirmation string
}

func runProfile(cmd *cobra.Command, app *App, flags profileFlags) error {
	sessions, err := app.Session()
	if err != nil {
		return err
	}

	current := sessions.Current()
	if !current.Authenticated() {
		return fmt.Errorf("not signed in. Please run 'schedulr login' first")
	}

	// Unset fields default to the current values, like an edit form
	user := decodeUser(current.User)
	if flags.name == "" {
		flags.name = user.Name
	}
	if flags.email == "" {
		flags.email = user.Email
	}

	// Prompt for the new password pair when only the old one was given
	if flags.oldPassword != "" && flags.password == "" {
		flags.password, err = promptPassword(app.Out, "New password")
		if err != nil {
			return err
		}
		flags.passwordConfirmation, err = promptPassword(app.Out, "Confirm new password")
		if err != nil {
			return err
		}
	}

	input := validate.ProfileInput{
		Name:                 flags.name,
		Email:                flags.email,
		OldPassword:          flags.oldPassword,
		Password:             flags.password,
		PasswordConfirmation: flags.passwordConfirmation,
	}
	if err := validate.Profile(input); err != nil {
		reportValidation(app.Out, err)
		return err
	}

	api, err := app.API()
	if err != nil {
		return err
	}

	// The password trio is only part of the request when the current
	// password was supplied; a stray --password alone changes nothing.
	update := client.ProfileUpdate{
		Name:  flags.name,
		Email: flags.email,
	}
	if flags.oldPassword != "" {
		update.OldPassword = flags.oldPassword
		update.Password = flags.password
		update.PasswordConfirmation = flags.passwordConfirmation
	}

	updated, err := api.UpdateProfile(cmd.Context(), update)
	if err != nil {
		app.Logger.Debug().Err(err).Msg("profile update failed")
		app.Toasts.Add(toast.Toast{
			Type:        toast.TypeError,
			Title:       "Update failed",
			Description: "Could not update the profile, check the fields.",
		})
		return err
	}

	if err := sessions.UpdateUser(updated); err != nil {
		return err
	}

	app.Toasts.Add(toast.Toast{
		Type:  toast.TypeSuccess,
		Title: "Profile updated",
	})
	return nil
}
