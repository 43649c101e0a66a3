package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/schedulr-app/schedulr/internal/cli/toast"
	"github.com/schedulr-app/schedulr/internal/cli/validate"
)

// NewSignupCmd creates the signup command
func NewSignupCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a Schedulr account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, app, name, email, password)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SCHEDULR_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")

	return cmd
}

func runSignup(cmd *cobra.Command, app *App, name, email, password string) error {
	if email == "" {
		email = os.Getenv("SCHEDULR_EMAIL")
	}

	if password == "" {
		var err error
		password, err = promptPassword(app.Out, "Password")
		if err != nil {
			return err
		}
	}

	if err := validate.SignUp(name, email, password); err != nil {
		reportValidation(app.Out, err)
		return err
	}

	api, err := app.API()
	if err != nil {
		return err
	}

	if err := api.Register(cmd.Context(), name, email, password); err != nil {
		app.Logger.Debug().Err(err).Msg("sign-up failed")
		app.Toasts.Add(toast.Toast{
			Type:        toast.TypeError,
			Title:       "Sign-up failed",
			Description: "Could not create the account, try again.",
		})
		return err
	}

	app.Toasts.Add(toast.Toast{
		Type:        toast.TypeSuccess,
		Title:       "Account created",
		Description: "You can now sign in with 'schedulr login'.",
	})
	return nil
}
