package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedulr-app/schedulr/internal/cli/toast"
)

// NewAvatarCmd creates the avatar command
func NewAvatarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar <file>",
		Short: "Upload a new avatar image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAvatar(cmd, app, args[0])
		},
	}

	return cmd
}

func runAvatar(cmd *cobra.Command, app *App, path string) error {
	sessions, err := app.Session()
	if err != nil {
		return err
	}
	if !sessions.Current().Authenticated() {
		return fmt.Errorf("not signed in. Please run 'schedulr login' first")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open avatar file: %w", err)
	}
	defer file.Close()

	api, err := app.API()
	if err != nil {
		return err
	}

	updated, err := api.UpdateAvatar(cmd.Context(), path, file)
	if err != nil {
		app.Logger.Debug().Err(err).Msg("avatar upload failed")
		app.Toasts.Add(toast.Toast{
			Type:        toast.TypeError,
			Title:       "Upload failed",
			Description: "Could not update the avatar, try again.",
		})
		return err
	}

	if err := sessions.UpdateUser(updated); err != nil {
		return err
	}

	app.Toasts.Add(toast.Toast{
		Type:  toast.TypeSuccess,
		Title: "Avatar updated!",
	})
	return nil
}
