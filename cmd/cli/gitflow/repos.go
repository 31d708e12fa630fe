package gitflow

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	reposUseConstant                   = "repos"
	reposShortDescriptionConstant      = "List repositories visible to a profile's API adapter"
	reposLongDescriptionConstant       = "repos selects a profile and lists the repositories its GitHub or GitLab token can access."
	listingRepositoriesMessageConstant = "Listing repositories"
	noRepositoriesFoundMessageConstant = "No repositories found.\n"
	repositoryLineTemplateConstant     = "%s\n"
)

// ReposCommandBuilder assembles the repos command.
type ReposCommandBuilder struct {
	Dependencies
}

// Build constructs the repos command.
func (builder *ReposCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   reposUseConstant,
		Short: reposShortDescriptionConstant,
		Long:  reposLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	bindProfileFlag(command)
	return command, nil
}

func (builder *ReposCommandBuilder) run(command *cobra.Command, arguments []string) error {
	manager, managerError := builder.loadManager(command)
	if managerError != nil {
		return managerError
	}

	selectedProfile, selectionError := builder.selectProfile(command, manager)
	if selectionError != nil {
		return selectionError
	}

	repositories, listError := builder.listRepositories(command, selectedProfile)
	if listError != nil {
		return listError
	}

	outputWriter := command.OutOrStdout()
	if len(repositories) == 0 {
		_, writeError := fmt.Fprint(outputWriter, noRepositoriesFoundMessageConstant)
		return writeError
	}
	for _, repository := range repositories {
		if _, writeError := fmt.Fprintf(outputWriter, repositoryLineTemplateConstant, repository); writeError != nil {
			return writeError
		}
	}
	return nil
}
