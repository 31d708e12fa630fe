package gitflow

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitp/internal/execshell"
	"github.com/temirov/gitp/internal/gitrepo"
	"github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/prompt"
)

const (
	cloneUseConstant                 = "clone"
	cloneShortDescriptionConstant    = "Clone a repository and apply a profile's identity to it"
	cloneLongDescriptionConstant     = "clone runs git clone for a URL or for a repository chosen from the profile's API adapter, then writes the profile's commit name and email into the clone's local git config."
	urlFlagNameConstant              = "url"
	urlFlagShorthandConstant         = "u"
	urlFlagDescriptionConstant       = "Repository URL to clone; prompts when omitted"
	directoryFlagNameConstant        = "directory"
	directoryFlagShorthandConstant   = "d"
	directoryFlagDescriptionConstant = "Target directory; defaults to the repository name"
	repositoryURLLabelConstant       = "Enter the repository URL:"
	repositorySelectLabelConstant    = "Select a repository:"
	gitCloneSubcommandConstant       = "clone"
	cloneCompletedMessageConstant    = "Cloned repository"
	logFieldURLConstant              = "url"
	logFieldDirectoryConstant        = "directory"
)

// CloneCommandBuilder assembles the clone command.
type CloneCommandBuilder struct {
	Dependencies
}

// Build constructs the clone command.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneUseConstant,
		Short: cloneShortDescriptionConstant,
		Long:  cloneLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	bindProfileFlag(command)
	command.Flags().StringP(urlFlagNameConstant, urlFlagShorthandConstant, "", urlFlagDescriptionConstant)
	command.Flags().StringP(directoryFlagNameConstant, directoryFlagShorthandConstant, "", directoryFlagDescriptionConstant)
	return command, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	manager, managerError := builder.loadManager(command)
	if managerError != nil {
		return managerError
	}

	selectedProfile, selectionError := builder.selectProfile(command, manager)
	if selectionError != nil {
		return selectionError
	}

	repositoryURL, urlError := builder.resolveRepositoryURL(command, selectedProfile)
	if urlError != nil {
		return urlError
	}

	directoryName, _ := command.Flags().GetString(directoryFlagNameConstant)
	directoryName = strings.TrimSpace(directoryName)
	if len(directoryName) == 0 {
		derivedName, deriveError := gitrepo.RepositoryDirectoryName(repositoryURL)
		if deriveError != nil {
			return deriveError
		}
		directoryName = derivedName
	}

	gitExecutor, executorError := builder.resolveGitExecutor(command)
	if executorError != nil {
		return executorError
	}

	_, cloneError := gitExecutor.ExecuteGit(command.Context(), execshell.CommandDetails{
		Arguments:        []string{gitCloneSubcommandConstant, repositoryURL, directoryName},
		WorkingDirectory: builder.WorkingDirectory,
	})
	if cloneError != nil {
		return cloneError
	}

	clonePath := directoryName
	if !filepath.IsAbs(clonePath) && len(strings.TrimSpace(builder.WorkingDirectory)) > 0 {
		clonePath = filepath.Join(builder.WorkingDirectory, clonePath)
	}

	builder.resolveLogger().Info(cloneCompletedMessageConstant,
		zap.String(logFieldURLConstant, repositoryURL),
		zap.String(logFieldDirectoryConstant, clonePath),
		zap.String(logFieldProfileConstant, selectedProfile.Name),
	)

	return applyProfileIdentity(builder.IdentityWriter, clonePath, selectedProfile)
}

// resolveRepositoryURL prefers the --url flag, then the profile's repository listing, then a free-form prompt.
func (builder *CloneCommandBuilder) resolveRepositoryURL(command *cobra.Command, selectedProfile profiles.Profile) (string, error) {
	repositoryURL, _ := command.Flags().GetString(urlFlagNameConstant)
	repositoryURL = strings.TrimSpace(repositoryURL)
	if len(repositoryURL) > 0 {
		return repositoryURL, nil
	}

	prompter := builder.resolvePrompter(command)
	if !selectedProfile.HasCredential() {
		answer, askError := prompter.AskText(prompt.TextRequest{Label: repositoryURLLabelConstant, Validator: prompt.RequireNonEmpty})
		if askError != nil {
			return "", askError
		}
		return strings.TrimSpace(answer), nil
	}

	repositories, listError := builder.listRepositories(command, selectedProfile)
	if listError != nil {
		return "", listError
	}
	if len(repositories) == 0 {
		return "", ErrNoRepositories
	}

	options := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		options = append(options, repository.String())
	}
	selectedIndex, selectError := prompter.AskSelect(repositorySelectLabelConstant, options)
	if selectError != nil {
		return "", selectError
	}
	if selectedIndex < 0 || selectedIndex >= len(repositories) {
		return "", ErrNoRepositories
	}
	return repositories[selectedIndex].CloneSource(), nil
}
