package gitflow

import (
	"strings"

	"github.com/temirov/gitp/internal/hosting"
)

const defaultGitBinaryConstant = "git"

// CommandConfiguration gathers the settings shared by repos, clone, config and commit.
type CommandConfiguration struct {
	StorePath string
	Hosting   hosting.TransportConfiguration
	GitBinary string
}

// DefaultCommandConfiguration returns the baseline git workflow settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Hosting:   hosting.DefaultTransportConfiguration(),
		GitBinary: defaultGitBinaryConstant,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.StorePath = strings.TrimSpace(configuration.StorePath)
	sanitized.GitBinary = strings.TrimSpace(configuration.GitBinary)
	if len(sanitized.GitBinary) == 0 {
		sanitized.GitBinary = defaultGitBinaryConstant
	}
	if sanitized.Hosting.RequestTimeout <= 0 {
		sanitized.Hosting.RequestTimeout = hosting.DefaultRequestTimeout
	}
	if len(strings.TrimSpace(sanitized.Hosting.GitHubAPIURL)) == 0 {
		sanitized.Hosting.GitHubAPIURL = hosting.DefaultGitHubAPIURL
	}
	return sanitized
}
