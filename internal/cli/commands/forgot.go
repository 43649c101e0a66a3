package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/schedulr-app/schedulr/internal/cli/toast"
	"github.com/schedulr-app/schedulr/internal/cli/userconfig"
	"github.com/schedulr-app/schedulr/internal/cli/validate"
)

// NewForgotPasswordCmd creates the forgot-password command
func NewForgotPasswordCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password recovery email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForgotPassword(cmd, app, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SCHEDULR_EMAIL)")

	return cmd
}

func runForgotPassword(cmd *cobra.Command, app *App, email string) error {
	if email == "" {
		email = os.Getenv("SCHEDULR_EMAIL")
	}
	if email == "" {
		email, _ = userconfig.GetDefaultEmail()
	}

	if err := validate.ForgotPassword(email); err != nil {
		reportValidation(app.Out, err)
		return err
	}

	api, err := app.API()
	if err != nil {
		return err
	}

	if err := api.ForgotPassword(cmd.Context(), email); err != nil {
		app.Logger.Debug().Err(err).Msg("password recovery failed")
		app.Toasts.Add(toast.Toast{
			Type:        toast.TypeError,
			Title:       "Password recovery failed",
			Description: "Could not request a recovery email, try again.",
		})
		return err
	}

	app.Toasts.Add(toast.Toast{
		Type:        toast.TypeSuccess,
		Title:       "Recovery email sent",
		Description: "Check your inbox for instructions.",
	})
	return nil
}
