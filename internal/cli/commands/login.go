package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedulr-app/schedulr/internal/cli/toast"
	"github.com/schedulr-app/schedulr/internal/cli/userconfig"
	"github.com/schedulr-app/schedulr/internal/cli/validate"
)

// NewLoginCmd creates the login command
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to Schedulr",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, app, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SCHEDULR_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SCHEDULR_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(cmd *cobra.Command, app *App, email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("SCHEDULR_EMAIL")
	}
	if email == "" {
		// Fall back to the email remembered from the last sign-in
		email, _ = userconfig.GetDefaultEmail()
	}
	if password == "" {
		password = os.Getenv("SCHEDULR_PASSWORD")
	}

	if password == "" {
		var err error
		password, err = promptPassword(app.Out, "Password")
		if err != nil {
			return err
		}
	}

	if err := validate.SignIn(email, password); err != nil {
		reportValidation(app.Out, err)
		return err
	}

	sessions, err := app.Session()
	if err != nil {
		return err
	}
	env, err := app.Environment()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "Signing in to %s (%s)...\n", env.Alias, env.URL)

	if err := sessions.SignIn(cmd.Context(), email, password); err != nil {
		// Credentials and transport failures get the same fixed message;
		// the distinction only matters for diagnostics.
		app.Logger.Debug().Err(err).Msg("sign-in failed")
		app.Toasts.Add(toast.Toast{
			Type:        toast.TypeError,
			Title:       "Authentication failed",
			Description: "Could not sign in, check your credentials.",
		})
		return err
	}

	if err := userconfig.SetDefaultEmail(email); err != nil {
		app.Logger.Debug().Err(err).Msg("failed to remember sign-in email")
	}

	user := decodeUser(sessions.Current().User)
	fmt.Fprintf(app.Out, "✓ Signed in as %s (%s)\n", user.Name, user.Email)

	return nil
}
