package profiles

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitp/internal/dependencies"
	coreprofiles "github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/prompt"
	flagutils "github.com/temirov/gitp/internal/utils/flags"
)

const (
	groupUseConstant                  = "profiles"
	groupShortDescriptionConstant     = "Manage gitp profiles"
	groupLongDescriptionConstant      = "profiles lists, shows, adds, removes and seeds the named git identities stored in ~/.config/profiles.json."
	listUseConstant                   = "list"
	listShortDescriptionConstant      = "List all profiles"
	showUseConstant                   = "show <name>"
	showShortDescriptionConstant      = "Show a single profile"
	addUseConstant                    = "add"
	addShortDescriptionConstant       = "Add a profile interactively"
	removeUseConstant                 = "remove"
	removeShortDescriptionConstant    = "Remove a profile"
	seedUseConstant                   = "seed"
	seedShortDescriptionConstant      = "Create a Default profile from the global git identity"
	outputFlagNameConstant            = "output"
	outputFlagShorthandConstant       = "o"
	outputFlagDescriptionConstant     = "Output format"
	nameFlagNameConstant              = "name"
	nameFlagShorthandConstant         = "n"
	nameFlagDescriptionConstant       = "Name of the profile to remove; prompts when omitted"
	storePathConfigurationKeyConstant = "store_path"
	defaultProfileNameConstant        = "Default"
	profileAddedTemplateConstant      = "Added profile %s\n"
	profileRemovedTemplateConstant    = "Removed profile %s\n"
	profileSeededTemplateConstant     = "Created profile %s from the global git identity\n"
	seedSkippedMessageConstant        = "Profiles already configured; nothing to seed.\n"
	seedIdentityErrorTemplateConstant = "unable to seed default profile: %w"
	logFieldStorePathConstant         = "store_path"
	storeResolvedMessageConstant      = "Resolved profile store"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the profiles configuration section.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the profiles command group with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	EnvironmentLookup     coreprofiles.EnvironmentLookup
	Store                 coreprofiles.Persistence
	Prompter              prompt.Prompter
	GlobalIdentityReader  dependencies.GlobalIdentityReader
}

// Build constructs the profiles command and its subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	groupCommand := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescriptionConstant,
		Long:  groupLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	listCommand := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runList,
	}
	listCommand.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, outputFormatTextConstant, flagutils.FormatChoiceUsage(outputFormatTextConstant, SupportedOutputFormats(), outputFlagDescriptionConstant))

	showCommand := &cobra.Command{
		Use:   showUseConstant,
		Short: showShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runShow,
	}
	showCommand.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, outputFormatTextConstant, flagutils.FormatChoiceUsage(outputFormatTextConstant, SupportedOutputFormats(), outputFlagDescriptionConstant))

	addCommand := &cobra.Command{
		Use:   addUseConstant,
		Short: addShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runAdd,
	}

	removeCommand := &cobra.Command{
		Use:   removeUseConstant,
		Short: removeShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runRemove,
	}
	removeCommand.Flags().StringP(nameFlagNameConstant, nameFlagShorthandConstant, "", nameFlagDescriptionConstant)

	seedCommand := &cobra.Command{
		Use:   seedUseConstant,
		Short: seedShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runSeed,
	}

	groupCommand.AddCommand(listCommand, showCommand, addCommand, removeCommand, seedCommand)
	return groupCommand, nil
}

func (builder *CommandBuilder) runList(command *cobra.Command, arguments []string) error {
	renderer, rendererError := builder.resolveRenderer(command)
	if rendererError != nil {
		return rendererError
	}

	manager, _, managerError := builder.loadManager(command, true)
	if managerError != nil {
		return managerError
	}

	return renderer.renderList(manager.Profiles())
}

func (builder *CommandBuilder) runShow(command *cobra.Command, arguments []string) error {
	renderer, rendererError := builder.resolveRenderer(command)
	if rendererError != nil {
		return rendererError
	}

	manager, _, managerError := builder.loadManager(command, true)
	if managerError != nil {
		return managerError
	}

	profile, lookupError := manager.Get(arguments[0])
	if lookupError != nil {
		return lookupError
	}
	return renderer.renderDetail(profile)
}

func (builder *CommandBuilder) runAdd(command *cobra.Command, arguments []string) error {
	manager, store, managerError := builder.loadManager(command, true)
	if managerError != nil {
		return managerError
	}

	addedProfile, addError := manager.AddInteractively(builder.resolvePrompter(command))
	if addError != nil {
		return addError
	}

	if saveError := manager.Save(command.Context(), store); saveError != nil {
		return saveError
	}

	_, writeError := fmt.Fprintf(command.OutOrStdout(), profileAddedTemplateConstant, addedProfile)
	return writeError
}

func (builder *CommandBuilder) runRemove(command *cobra.Command, arguments []string) error {
	profileName, _ := command.Flags().GetString(nameFlagNameConstant)

	manager, store, managerError := builder.loadManager(command, false)
	if managerError != nil {
		return managerError
	}

	var removedProfile coreprofiles.Profile
	var removeError error
	if len(profileName) > 0 {
		removedProfile, removeError = manager.RemoveByName(profileName)
	} else {
		removedProfile, removeError = manager.RemoveInteractively(builder.resolvePrompter(command))
	}
	if removeError != nil {
		return removeError
	}

	if saveError := manager.Save(command.Context(), store); saveError != nil {
		return saveError
	}

	_, writeError := fmt.Fprintf(command.OutOrStdout(), profileRemovedTemplateConstant, removedProfile.Name)
	return writeError
}

func (builder *CommandBuilder) runSeed(command *cobra.Command, arguments []string) error {
	manager, store, managerError := builder.loadManager(command, true)
	if managerError != nil {
		return managerError
	}

	if manager.Len() > 0 {
		_, writeError := fmt.Fprint(command.OutOrStdout(), seedSkippedMessageConstant)
		return writeError
	}

	identity, identityError := dependencies.ResolveGlobalIdentityReader(builder.GlobalIdentityReader).ReadGlobalIdentity()
	if identityError != nil {
		return fmt.Errorf(seedIdentityErrorTemplateConstant, identityError)
	}

	defaultProfile := coreprofiles.Profile{
		Name: defaultProfileNameConstant,
		GitIdentity: coreprofiles.GitIdentity{
			CommitName:  identity.Name,
			CommitEmail: identity.Email,
		},
	}
	if addError := manager.Add(defaultProfile); addError != nil {
		return addError
	}

	if saveError := manager.Save(command.Context(), store); saveError != nil {
		return saveError
	}

	_, writeError := fmt.Fprintf(command.OutOrStdout(), profileSeededTemplateConstant, defaultProfile.Name)
	return writeError
}

// loadManager resolves the store and loads it; tolerateMissing treats an absent store file as empty.
func (builder *CommandBuilder) loadManager(command *cobra.Command, tolerateMissing bool) (*coreprofiles.Manager, coreprofiles.Persistence, error) {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	store, storeError := dependencies.ResolveProfileStore(builder.Store, builder.EnvironmentLookup, configuration.StorePath, logger)
	if storeError != nil {
		return nil, nil, storeError
	}
	if pathReporter, reportsPath := store.(interface{ Path() string }); reportsPath {
		logger.Debug(storeResolvedMessageConstant, zap.String(logFieldStorePathConstant, pathReporter.Path()))
	}

	manager := coreprofiles.NewManager(nil, logger)
	var loadError error
	if tolerateMissing {
		loadError = manager.LoadOrEmpty(command.Context(), store)
	} else {
		loadError = manager.Load(command.Context(), store)
	}
	if loadError != nil {
		return nil, nil, loadError
	}
	return manager, store, nil
}

func (builder *CommandBuilder) resolveRenderer(command *cobra.Command) (profileRenderer, error) {
	outputValue, _ := command.Flags().GetString(outputFlagNameConstant)
	outputFormat, formatError := ParseOutputFormat(outputValue)
	if formatError != nil {
		return profileRenderer{}, formatError
	}
	return profileRenderer{writer: command.OutOrStdout(), format: outputFormat}, nil
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) prompt.Prompter {
	return dependencies.ResolvePrompter(builder.Prompter, command.InOrStdin(), command.OutOrStdout())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
