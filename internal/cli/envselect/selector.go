package envselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/schedulr-app/schedulr/internal/cli/config"
	"github.com/schedulr-app/schedulr/internal/cli/userconfig"
)

// Resolve determines which environment to use based on the following priority:
// 1. If alias is provided (flag or SCHEDULR_ENV), use that environment
// 2. If user has a selected environment in their local config, use that
// 3. If only one environment in project config, use that
// 4. Otherwise, prompt user to select an environment interactively
func Resolve(projectConfig *config.Config, alias string) (*config.Environment, error) {
	// Priority 1: Use alias if provided
	if alias != "" {
		env, err := projectConfig.GetEnvironmentByAlias(alias)
		if err != nil {
			return nil, err
		}
		return env, nil
	}

	// Priority 2: Use selected environment from user config
	selected, err := userconfig.GetSelectedEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selected != "" {
		env, err := projectConfig.GetEnvironmentByAlias(selected)
		if err != nil {
			// Selected environment no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedEnvironment("")
		} else {
			return env, nil
		}
	}

	// Priority 3: If only one environment, use it automatically
	if len(projectConfig.Environments) == 1 {
		env := &projectConfig.Environments[0]
		if err := userconfig.SetSelectedEnvironment(env.Alias); err != nil {
			// Don't fail if we can't save, just continue
			fmt.Printf("Warning: failed to save selected environment: %v\n", err)
		}
		return env, nil
	}

	// Priority 4: Prompt user to select an environment
	env, err := PromptSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedEnvironment(env.Alias); err != nil {
		// Don't fail if we can't save, just continue
		fmt.Printf("Warning: failed to save selected environment: %v\n", err)
	}

	return env, nil
}

// PromptSelection shows an interactive prompt for the user to select an environment
func PromptSelection(projectConfig *config.Config) (*config.Environment, error) {
	if len(projectConfig.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in %s", config.ConfigFileName)
	}

	labels := make([]string, len(projectConfig.Environments))
	for i, env := range projectConfig.Environments {
		labels[i] = fmt.Sprintf("%s (%s)", env.Alias, env.URL)
	}

	prompt := promptui.Select{
		Label: "Select an environment",
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("environment selection cancelled: %w", err)
	}

	return &projectConfig.Environments[idx], nil
}
