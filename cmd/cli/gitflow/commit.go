package gitflow

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/gitp/internal/execshell"
	"github.com/temirov/gitp/internal/prompt"
)

const (
	commitUseConstant              = "commit"
	commitShortDescriptionConstant = "Stage every change and commit it"
	commitLongDescriptionConstant  = "commit runs git add . followed by git commit with the given or prompted message."
	messageFlagNameConstant        = "message"
	messageFlagShorthandConstant   = "m"
	messageFlagDescriptionConstant = "Commit message; prompts when omitted"
	commitMessageLabelConstant     = "Enter your commit message:"
	gitAddSubcommandConstant       = "add"
	gitAddAllPathConstant          = "."
	gitCommitSubcommandConstant    = "commit"
	gitMessageFlagConstant         = "-m"
)

// CommitCommandBuilder assembles the commit command.
type CommitCommandBuilder struct {
	Dependencies
}

// Build constructs the commit command.
func (builder *CommitCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commitUseConstant,
		Short: commitShortDescriptionConstant,
		Long:  commitLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().StringP(messageFlagNameConstant, messageFlagShorthandConstant, "", messageFlagDescriptionConstant)
	return command, nil
}

func (builder *CommitCommandBuilder) run(command *cobra.Command, arguments []string) error {
	commitMessage, _ := command.Flags().GetString(messageFlagNameConstant)
	commitMessage = strings.TrimSpace(commitMessage)
	if len(commitMessage) == 0 {
		answer, askError := builder.resolvePrompter(command).AskText(prompt.TextRequest{Label: commitMessageLabelConstant, Validator: prompt.RequireNonEmpty})
		if askError != nil {
			return askError
		}
		commitMessage = strings.TrimSpace(answer)
	}

	gitExecutor, executorError := builder.resolveGitExecutor(command)
	if executorError != nil {
		return executorError
	}

	gitInvocations := [][]string{
		{gitAddSubcommandConstant, gitAddAllPathConstant},
		{gitCommitSubcommandConstant, gitMessageFlagConstant, commitMessage},
	}
	for _, gitArguments := range gitInvocations {
		_, executionError := gitExecutor.ExecuteGit(command.Context(), execshell.CommandDetails{
			Arguments:        gitArguments,
			WorkingDirectory: builder.WorkingDirectory,
		})
		if executionError != nil {
			return executionError
		}
	}
	return nil
}
