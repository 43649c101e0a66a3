package commands

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(app)
		},
	}

	return cmd
}

func runWhoami(app *App) error {
	sessions, err := app.Session()
	if err != nil {
		return err
	}
	env, err := app.Environment()
	if err != nil {
		return err
	}

	current := sessions.Current()
	if !current.Authenticated() {
		fmt.Fprintln(app.Out, "Not signed in.")
		return nil
	}

	user := decodeUser(current.User)
	fmt.Fprintf(app.Out, "Signed in to %s (%s)\n", env.Alias, env.URL)
	fmt.Fprintf(app.Out, "  User:  %s\n", user.Name)
	fmt.Fprintf(app.Out, "  Email: %s\n", user.Email)
	if user.AvatarURL != "" {
		fmt.Fprintf(app.Out, "  Avatar: %s\n", user.AvatarURL)
	}

	if expiry, ok := tokenExpiry(current.Token); ok {
		fmt.Fprintf(app.Out, "  Session expires: %s\n", expiry.Format(time.RFC1123))
	}

	return nil
}

// tokenExpiry extracts the exp claim from a JWT bearer token without
// verifying it; validity is only ever checked server-side. Opaque tokens
// simply have no expiry to display.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
