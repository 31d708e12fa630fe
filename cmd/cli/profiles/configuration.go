package profiles

import "strings"

// CommandConfiguration captures the profiles section of the gitp configuration.
type CommandConfiguration struct {
	StorePath string `mapstructure:"store_path"`
}

// DefaultCommandConfiguration stores profiles at $HOME/.config/profiles.json.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{StorePath: ""}
}

// DefaultConfigurationValues exposes the viper defaults for the profiles section rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		strings.TrimSuffix(prefix, ".") + "." + storePathConfigurationKeyConstant: defaults.StorePath,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.StorePath = strings.TrimSpace(configuration.StorePath)
	return sanitized
}
