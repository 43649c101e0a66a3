package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedulr-app/schedulr/internal/cli/commands"
	"github.com/schedulr-app/schedulr/internal/cli/config"
	"github.com/schedulr-app/schedulr/internal/logger"
)

var version = "dev" // Will be set during build

// Execute runs the root command
func Execute() error {
	settings := config.LoadSettings()
	logger.Init(settings.LogLevel, settings.LogFormat)

	// The session manager and toast queue live here, created once and
	// injected into every command.
	app := commands.NewApp(os.Stdout, logger.GetLogger(), settings)
	defer app.Toasts.Close()

	rootCmd := &cobra.Command{
		Use:   "schedulr",
		Short: "Schedulr - scheduling service client",
		Long: `Schedulr CLI - Manage your Schedulr account from the terminal.

Sign in once and the session is stored securely; subsequent commands reuse it
until you sign out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.EnvAlias, "env", os.Getenv("SCHEDULR_ENV"),
		"Environment alias from schedulr.yaml (or set SCHEDULR_ENV)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("schedulr version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd(app))
	rootCmd.AddCommand(commands.NewLogoutCmd(app))
	rootCmd.AddCommand(commands.NewSignupCmd(app))
	rootCmd.AddCommand(commands.NewForgotPasswordCmd(app))
	rootCmd.AddCommand(commands.NewProfileCmd(app))
	rootCmd.AddCommand(commands.NewAvatarCmd(app))
	rootCmd.AddCommand(commands.NewWhoamiCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
