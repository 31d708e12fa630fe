package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterMessages(t *testing.T) {
	formatter := CommandMessageFormatter{}
	cloneCommand := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"clone", "https://github.com/org/repo.git", "repo"}},
	}
	addCommand := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"add", "."}, WorkingDirectory: "/workspace/repo"},
	}
	commitCommand := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"commit", "-m", "Initial import"}},
	}

	testCases := []struct {
		name            string
		build           func() string
		expectedMessage string
	}{
		{
			name:            "clone_started",
			build:           func() string { return formatter.BuildStartedMessage(cloneCommand) },
			expectedMessage: "Cloning https://github.com/org/repo.git into repo",
		},
		{
			name: "clone_failed",
			build: func() string {
				return formatter.BuildFailureMessage(cloneCommand, ExecutionResult{ExitCode: 128, StandardError: "fatal: repository not found\n"})
			},
			expectedMessage: "Failed to clone https://github.com/org/repo.git into repo (exit code 128: fatal: repository not found)",
		},
		{
			name: "clone_without_destination",
			build: func() string {
				return formatter.BuildSuccessMessage(ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"clone", "--quiet", "git@example.com:org/repo.git"}}})
			},
			expectedMessage: "Cloned git@example.com:org/repo.git into repository directory",
		},
		{
			name:            "add_success",
			build:           func() string { return formatter.BuildSuccessMessage(addCommand) },
			expectedMessage: "Staged . in /workspace/repo",
		},
		{
			name:            "commit_started_in_current_directory",
			build:           func() string { return formatter.BuildStartedMessage(commitCommand) },
			expectedMessage: "Committing in current directory: \"Initial import\"",
		},
		{
			name:            "commit_execution_failure",
			build:           func() string { return formatter.BuildExecutionFailureMessage(commitCommand, errors.New("signal: killed")) },
			expectedMessage: "Unable to commit in current directory: \"Initial import\": signal: killed",
		},
		{
			name: "generic_git_subcommand",
			build: func() string {
				return formatter.BuildStartedMessage(ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status"}, WorkingDirectory: "/workspace"}})
			},
			expectedMessage: "Running git status (in /workspace)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedMessage, testCase.build())
		})
	}
}
