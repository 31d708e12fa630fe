package gitflow

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitp/internal/dependencies"
	"github.com/temirov/gitp/internal/hosting"
	"github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/prompt"
)

const (
	profileFlagNameConstant        = "profile"
	profileFlagShorthandConstant   = "p"
	profileFlagDescriptionConstant = "Name of the profile to use; prompts when omitted"
	profileSelectedMessageConstant = "Selected profile"
	logFieldProfileConstant        = "profile"
	logFieldProviderConstant       = "provider"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the git workflow configuration.
type ConfigurationProvider func() CommandConfiguration

// Dependencies are the collaborators shared by the git workflow commands.
// Nil fields fall back to the production implementations.
type Dependencies struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	EnvironmentLookup     profiles.EnvironmentLookup
	Store                 profiles.Persistence
	Prompter              prompt.Prompter
	GitExecutor           dependencies.GitExecutor
	IdentityWriter        dependencies.IdentityWriter
	HTTPClient            hosting.HTTPClient
	WorkingDirectory      string
}

func (deps Dependencies) resolveLogger() *zap.Logger {
	if deps.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := deps.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (deps Dependencies) resolveConfiguration() CommandConfiguration {
	if deps.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return deps.ConfigurationProvider().sanitize()
}

func (deps Dependencies) resolvePrompter(command *cobra.Command) prompt.Prompter {
	return dependencies.ResolvePrompter(deps.Prompter, command.InOrStdin(), command.OutOrStdout())
}

func (deps Dependencies) resolveGitExecutor(command *cobra.Command) (dependencies.GitExecutor, error) {
	return dependencies.ResolveGitExecutor(deps.GitExecutor, deps.resolveLogger(), dependencies.GitExecutorOptions{
		GitBinary:      deps.resolveConfiguration().GitBinary,
		StandardOutput: command.OutOrStdout(),
		StandardError:  command.ErrOrStderr(),
	})
}

func (deps Dependencies) resolveTransport() hosting.Transport {
	return dependencies.ResolveTransport(deps.resolveConfiguration().Hosting, deps.HTTPClient)
}

// loadManager loads every stored profile; a missing store file is reported as profiles.NotFoundError.
func (deps Dependencies) loadManager(command *cobra.Command) (*profiles.Manager, error) {
	logger := deps.resolveLogger()
	store, storeError := dependencies.ResolveProfileStore(deps.Store, deps.EnvironmentLookup, deps.resolveConfiguration().StorePath, logger)
	if storeError != nil {
		return nil, storeError
	}

	manager := profiles.NewManager(nil, logger)
	if loadError := manager.Load(command.Context(), store); loadError != nil {
		return nil, loadError
	}
	return manager, nil
}

// selectProfile returns the named profile or asks the user to choose one.
func (deps Dependencies) selectProfile(command *cobra.Command, manager *profiles.Manager) (profiles.Profile, error) {
	profileName, _ := command.Flags().GetString(profileFlagNameConstant)
	profileName = strings.TrimSpace(profileName)

	var selectedProfile profiles.Profile
	var selectionError error
	if len(profileName) > 0 {
		selectedProfile, selectionError = manager.Get(profileName)
	} else {
		selectedProfile, selectionError = manager.SelectInteractively(deps.resolvePrompter(command))
	}
	if selectionError != nil {
		return profiles.Profile{}, selectionError
	}

	deps.resolveLogger().Debug(profileSelectedMessageConstant, zap.String(logFieldProfileConstant, selectedProfile.Name))
	return selectedProfile, nil
}

func (deps Dependencies) listRepositories(command *cobra.Command, profile profiles.Profile) ([]hosting.Repository, error) {
	if !profile.HasCredential() {
		return nil, MissingCredentialError{ProfileName: profile.Name}
	}
	deps.resolveLogger().Debug(listingRepositoriesMessageConstant,
		zap.String(logFieldProfileConstant, profile.Name),
		zap.String(logFieldProviderConstant, string(profile.Credential.Provider())),
	)
	return profile.Credential.ListRepositories(command.Context(), deps.resolveTransport())
}

func bindProfileFlag(command *cobra.Command) {
	command.Flags().StringP(profileFlagNameConstant, profileFlagShorthandConstant, "", profileFlagDescriptionConstant)
}
