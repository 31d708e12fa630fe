package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// CommandName identifies an external tool.
type CommandName string

// CommandGit is the git command line client.
const CommandGit CommandName = CommandName("git")

const (
	loggerNotConfiguredMessageConstant         = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant  = "shell executor command runner not configured"
	commandFailedTemplateConstant              = "%s exited with code %d"
	commandFailedStandardErrorTemplateConstant = "%s exited with code %d: %s"
	commandExecutionTemplateConstant           = "%s could not run: %v"
	commandStartedLogMessageConstant           = "Executing command"
	commandFinishedLogMessageConstant          = "Command finished"
	commandErroredLogMessageConstant           = "Command could not start"
	logFieldCommandConstant                    = "command"
	logFieldArgumentsConstant                  = "arguments"
	logFieldWorkingDirectoryConstant           = "working_directory"
	logFieldExitCodeConstant                   = "exit_code"
	commandLabelSeparatorConstant              = " "
)

var (
	// ErrLoggerNotConfigured indicates NewShellExecutor received a nil logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates NewShellExecutor received a nil runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandDetails carries the arguments and environment of one invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand is a fully described invocation.
type ShellCommand struct {
	Name       CommandName
	Executable string
	Details    CommandDetails
}

// Label renders the command line for messages.
func (command ShellCommand) Label() string {
	parts := append([]string{command.executable()}, command.Details.Arguments...)
	return strings.Join(parts, commandLabelSeparatorConstant)
}

func (command ShellCommand) executable() string {
	if len(strings.TrimSpace(command.Executable)) > 0 {
		return command.Executable
	}
	return string(command.Name)
}

// ExecutionResult captures what a finished process reported.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner starts processes.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a process that exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failedError CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedStandardErrorTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a process that could not be started.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the start failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionTemplateConstant, executionError.Command.Label(), executionError.Cause)
}

// Unwrap exposes the runner failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutorOption customizes a ShellExecutor.
type ShellExecutorOption func(executor *ShellExecutor)

// WithCommandEventObserver reports command lifecycle events to observer.
func WithCommandEventObserver(observer CommandEventObserver) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// WithGitExecutable runs git from the given path instead of looking up "git".
func WithGitExecutable(executable string) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		executor.gitExecutable = strings.TrimSpace(executable)
	}
}

// ShellExecutor runs external tools with logging and typed failures.
type ShellExecutor struct {
	logger        *zap.Logger
	runner        CommandRunner
	observer      CommandEventObserver
	gitExecutable string
}

// NewShellExecutor constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ShellExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{logger: logger, runner: runner, observer: noopCommandEventObserver{}}
	for _, option := range options {
		option(executor)
	}
	return executor, nil
}

// ExecuteGit runs git with the supplied details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Executable: executor.gitExecutable, Details: details})
}

// Execute runs command, returning CommandFailedError for non-zero exits and
// CommandExecutionError when the process cannot start.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandConstant, command.executable()),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
	executor.observer.CommandStarted(command)

	result, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Debug(commandErroredLogMessageConstant, zap.String(logFieldCommandConstant, command.executable()), zap.Error(runError))
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.logger.Debug(
		commandFinishedLogMessageConstant,
		zap.String(logFieldCommandConstant, command.executable()),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
	)
	executor.observer.CommandCompleted(command, result)

	if result.ExitCode != 0 {
		return ExecutionResult{}, CommandFailedError{Command: command, Result: result}
	}
	return result, nil
}
