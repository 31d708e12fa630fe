package gitflow

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	configUseConstant              = "config"
	configShortDescriptionConstant = "Apply a profile's identity to the current repository"
	configLongDescriptionConstant  = "config writes the selected profile's commit name and email into the local git config of the repository containing the working directory."
	usingProfileTemplateConstant   = "Using profile %s\n"
)

// ConfigCommandBuilder assembles the config command.
type ConfigCommandBuilder struct {
	Dependencies
}

// Build constructs the config command.
func (builder *ConfigCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   configUseConstant,
		Short: configShortDescriptionConstant,
		Long:  configLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	bindProfileFlag(command)
	return command, nil
}

func (builder *ConfigCommandBuilder) run(command *cobra.Command, arguments []string) error {
	manager, managerError := builder.loadManager(command)
	if managerError != nil {
		return managerError
	}

	selectedProfile, selectionError := builder.selectProfile(command, manager)
	if selectionError != nil {
		return selectionError
	}

	if applyError := applyProfileIdentity(builder.IdentityWriter, builder.WorkingDirectory, selectedProfile); applyError != nil {
		return applyError
	}

	_, writeError := fmt.Fprintf(command.OutOrStdout(), usingProfileTemplateConstant, selectedProfile)
	return writeError
}
