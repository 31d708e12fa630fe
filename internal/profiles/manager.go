package profiles

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitp/internal/hosting"
	"github.com/temirov/gitp/internal/prompt"
)

const (
	selectProfileLabelConstant         = "Select a profile from the list:"
	profileNameLabelConstant           = "Enter a name for your new profile:"
	commitNameLabelConstant            = "Enter the commit name for your profile:"
	commitEmailLabelConstant           = "Enter the commit email for your profile:"
	enableAdapterLabelTemplateConstant = "Do you want to enable an API adapter for your profile? (%s)"
	selectAdapterLabelConstant         = "Select one of the API adapters:"
	gitHubTokenLabelConstant           = "Enter the GitHub personal access token:"
	gitLabHostLabelConstant            = "Enter the GitLab instance host:"
	gitLabTokenLabelConstant           = "Enter the GitLab access token:"
	providerListSeparatorConstant      = ", "
	profileAddedMessageConstant        = "Added profile"
	profileRemovedMessageConstant      = "Removed profile"
	selectionIndexTemplateConstant     = "selection index %d outside %d profiles"
	profileNotFoundIndexConstant       = -1
)

// Persistence loads and saves the full profile collection.
type Persistence interface {
	Load(executionContext context.Context) ([]Profile, error)
	LoadOrEmpty(executionContext context.Context) ([]Profile, error)
	Save(executionContext context.Context, profiles []Profile) error
}

// Manager holds the in-memory profile collection in insertion order.
type Manager struct {
	profiles []Profile
	logger   *zap.Logger
}

// NewManager constructs a Manager over a copy of profiles.
func NewManager(profiles []Profile, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{profiles: append([]Profile{}, profiles...), logger: logger}
}

// Load replaces the collection with the persisted profiles.
func (manager *Manager) Load(executionContext context.Context, persistence Persistence) error {
	loadedProfiles, loadError := persistence.Load(executionContext)
	if loadError != nil {
		return loadError
	}
	manager.profiles = loadedProfiles
	return nil
}

// LoadOrEmpty replaces the collection with the persisted profiles, starting
// empty when nothing has been persisted yet.
func (manager *Manager) LoadOrEmpty(executionContext context.Context, persistence Persistence) error {
	loadedProfiles, loadError := persistence.LoadOrEmpty(executionContext)
	if loadError != nil {
		return loadError
	}
	manager.profiles = loadedProfiles
	return nil
}

// Save persists the collection.
func (manager *Manager) Save(executionContext context.Context, persistence Persistence) error {
	return persistence.Save(executionContext, manager.Profiles())
}

// Len reports the number of profiles.
func (manager *Manager) Len() int {
	return len(manager.profiles)
}

// Profiles returns a copy of the collection.
func (manager *Manager) Profiles() []Profile {
	return append([]Profile{}, manager.profiles...)
}

// ListNames returns profile names in store order.
func (manager *Manager) ListNames() []string {
	names := make([]string, 0, len(manager.profiles))
	for _, profile := range manager.profiles {
		names = append(names, profile.Name)
	}
	return names
}

// FindByName returns the first profile whose name matches exactly.
func (manager *Manager) FindByName(name string) (Profile, bool) {
	profileIndex := manager.indexOf(name)
	if profileIndex == profileNotFoundIndexConstant {
		return Profile{}, false
	}
	return manager.profiles[profileIndex], true
}

// Get returns the named profile or a NotFoundError.
func (manager *Manager) Get(name string) (Profile, error) {
	profile, found := manager.FindByName(name)
	if !found {
		return Profile{}, NotFoundError{Subject: profileSubjectConstant, Name: name}
	}
	return profile, nil
}

// Add validates profile and appends it.
func (manager *Manager) Add(profile Profile) error {
	if validationError := profile.Validate(); validationError != nil {
		return validationError
	}
	if manager.indexOf(profile.Name) != profileNotFoundIndexConstant {
		return DuplicateProfileError{Name: profile.Name}
	}

	manager.profiles = append(manager.profiles, profile)
	manager.logger.Info(profileAddedMessageConstant, zap.String(logFieldProfileConstant, profile.Name))
	return nil
}

// RemoveByName removes the named profile and returns it.
func (manager *Manager) RemoveByName(name string) (Profile, error) {
	profileIndex := manager.indexOf(name)
	if profileIndex == profileNotFoundIndexConstant {
		return Profile{}, NotFoundError{Subject: profileSubjectConstant, Name: name}
	}
	return manager.removeAt(profileIndex), nil
}

// SelectInteractively asks the user to choose a profile.
func (manager *Manager) SelectInteractively(prompter prompt.Prompter) (Profile, error) {
	if len(manager.profiles) == 0 {
		return Profile{}, SelectionError{Cause: ErrEmptyCollection}
	}

	options := make([]string, 0, len(manager.profiles))
	for _, profile := range manager.profiles {
		options = append(options, profile.String())
	}

	selectedIndex, selectError := prompter.AskSelect(selectProfileLabelConstant, options)
	if selectError != nil {
		return Profile{}, SelectionError{Cause: selectError}
	}
	if selectedIndex < 0 || selectedIndex >= len(manager.profiles) {
		return Profile{}, SelectionError{Cause: fmt.Errorf(selectionIndexTemplateConstant, selectedIndex, len(manager.profiles))}
	}
	return manager.profiles[selectedIndex], nil
}

// AddInteractively prompts for a new profile and appends it. Nothing is persisted.
func (manager *Manager) AddInteractively(prompter prompt.Prompter) (Profile, error) {
	name, nameError := prompter.AskText(prompt.TextRequest{
		Label:     profileNameLabelConstant,
		Validator: prompt.Chain(prompt.RequireNonEmpty, manager.rejectTakenName),
	})
	if nameError != nil {
		return Profile{}, SelectionError{Cause: nameError}
	}

	commitName, commitNameError := prompter.AskText(prompt.TextRequest{Label: commitNameLabelConstant, Validator: prompt.RequireNonEmpty})
	if commitNameError != nil {
		return Profile{}, SelectionError{Cause: commitNameError}
	}

	commitEmail, commitEmailError := prompter.AskText(prompt.TextRequest{Label: commitEmailLabelConstant, Validator: prompt.RequireNonEmpty})
	if commitEmailError != nil {
		return Profile{}, SelectionError{Cause: commitEmailError}
	}

	credential, credentialError := askCredential(prompter)
	if credentialError != nil {
		return Profile{}, SelectionError{Cause: credentialError}
	}

	profile := Profile{
		Name: strings.TrimSpace(name),
		GitIdentity: GitIdentity{
			CommitName:  strings.TrimSpace(commitName),
			CommitEmail: strings.TrimSpace(commitEmail),
		},
		Credential: credential,
	}
	if addError := manager.Add(profile); addError != nil {
		return Profile{}, addError
	}
	return profile, nil
}

// RemoveInteractively asks the user to choose a profile and removes it.
func (manager *Manager) RemoveInteractively(prompter prompt.Prompter) (Profile, error) {
	if len(manager.profiles) == 0 {
		return Profile{}, ErrEmptyCollection
	}

	selectedProfile, selectError := manager.SelectInteractively(prompter)
	if selectError != nil {
		return Profile{}, selectError
	}

	profileIndex := manager.indexOf(selectedProfile.Name)
	if profileIndex == profileNotFoundIndexConstant {
		return Profile{}, InternalConsistencyError{Name: selectedProfile.Name}
	}
	return manager.removeAt(profileIndex), nil
}

func (manager *Manager) removeAt(profileIndex int) Profile {
	removedProfile := manager.profiles[profileIndex]
	manager.profiles = append(manager.profiles[:profileIndex:profileIndex], manager.profiles[profileIndex+1:]...)
	manager.logger.Info(profileRemovedMessageConstant, zap.String(logFieldProfileConstant, removedProfile.Name))
	return removedProfile
}

func (manager *Manager) indexOf(name string) int {
	for profileIndex := range manager.profiles {
		if manager.profiles[profileIndex].Name == name {
			return profileIndex
		}
	}
	return profileNotFoundIndexConstant
}

func (manager *Manager) rejectTakenName(answer string) error {
	trimmedAnswer := strings.TrimSpace(answer)
	if manager.indexOf(trimmedAnswer) != profileNotFoundIndexConstant {
		return DuplicateProfileError{Name: trimmedAnswer}
	}
	return nil
}

func askCredential(prompter prompt.Prompter) (hosting.Credential, error) {
	providers := hosting.Providers()
	providerNames := make([]string, 0, len(providers))
	for _, provider := range providers {
		providerNames = append(providerNames, string(provider))
	}

	enableAdapter, confirmError := prompter.AskConfirm(fmt.Sprintf(enableAdapterLabelTemplateConstant, strings.Join(providerNames, providerListSeparatorConstant)), true)
	if confirmError != nil {
		return nil, confirmError
	}
	if !enableAdapter {
		return nil, nil
	}

	selectedIndex, selectError := prompter.AskSelect(selectAdapterLabelConstant, providerNames)
	if selectError != nil {
		return nil, selectError
	}
	if selectedIndex < 0 || selectedIndex >= len(providers) {
		return nil, fmt.Errorf(selectionIndexTemplateConstant, selectedIndex, len(providers))
	}

	switch providers[selectedIndex] {
	case hosting.ProviderGitLab:
		host, hostError := prompter.AskText(prompt.TextRequest{
			Label:        gitLabHostLabelConstant,
			DefaultValue: hosting.DefaultGitLabHost,
			Validator:    prompt.RequireNonEmpty,
		})
		if hostError != nil {
			return nil, hostError
		}
		token, tokenError := prompter.AskPassword(prompt.TextRequest{Label: gitLabTokenLabelConstant, Validator: prompt.RequireNonEmpty})
		if tokenError != nil {
			return nil, tokenError
		}
		return hosting.GitLabCredential{Token: strings.TrimSpace(token), Host: strings.TrimSpace(host)}, nil
	default:
		token, tokenError := prompter.AskPassword(prompt.TextRequest{Label: gitHubTokenLabelConstant, Validator: prompt.RequireNonEmpty})
		if tokenError != nil {
			return nil, tokenError
		}
		return hosting.GitHubCredential{Token: strings.TrimSpace(token)}, nil
	}
}
