package execshell_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitp/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testCommandArgumentConstant                  = "--version"
	testWorkingDirectoryConstant                 = "."
	testStandardErrorOutputConstant              = "failure"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

type recordingObserver struct {
	events []string
}

func (eventRecorder *recordingObserver) CommandStarted(command execshell.ShellCommand) {
	eventRecorder.events = append(eventRecorder.events, "started")
}

func (eventRecorder *recordingObserver) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	eventRecorder.events = append(eventRecorder.events, "completed")
}

func (eventRecorder *recordingObserver) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	eventRecorder.events = append(eventRecorder.events, "failed")
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name             string
		runnerResult     execshell.ExecutionResult
		runnerError      error
		expectErrorType  any
		expectedEvents   []string
		expectedLogCount int
	}{
		{
			name: testExecutionSuccessCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardOutput: "ok",
				ExitCode:       0,
			},
			expectedEvents:   []string{"started", "completed"},
			expectedLogCount: 2,
		},
		{
			name: testExecutionFailureCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardError: testStandardErrorOutputConstant,
				ExitCode:      1,
			},
			expectErrorType:  execshell.CommandFailedError{},
			expectedEvents:   []string{"started", "completed"},
			expectedLogCount: 2,
		},
		{
			name:             testExecutionRunnerErrorCaseNameConstant,
			runnerError:      errors.New("runner failure"),
			expectErrorType:  execshell.CommandExecutionError{},
			expectedEvents:   []string{"started", "failed"},
			expectedLogCount: 2,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			eventObserver := &recordingObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(logger, recordingRunner, execshell.WithCommandEventObserver(eventObserver))
			require.NoError(testInstance, creationError)

			commandDetails := execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}, WorkingDirectory: testWorkingDirectoryConstant}
			executionResult, executionError := shellExecutor.ExecuteGit(context.Background(), commandDetails)

			if testCase.expectErrorType != nil {
				require.Error(testInstance, executionError)
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.Empty(testInstance, executionResult.StandardOutput)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult.StandardOutput, executionResult.StandardOutput)
			}

			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
			require.Equal(testInstance, testCase.expectedEvents, eventObserver.events)
		})
	}
}

func TestShellExecutorUsesConfiguredGitExecutable(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner, execshell.WithGitExecutable(" /opt/git/bin/git "))
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"add", "."}})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, recordingRunner.recordedCommands, 1)

	recordedCommand := recordingRunner.recordedCommands[0]
	require.Equal(testInstance, execshell.CommandGit, recordedCommand.Name)
	require.Equal(testInstance, "/opt/git/bin/git", recordedCommand.Executable)
	require.Equal(testInstance, "/opt/git/bin/git add .", recordedCommand.Label())
}

func TestCommandFailedErrorIncludesStandardError(testInstance *testing.T) {
	failedError := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"commit", "-m", "wip"}}},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: "nothing to commit\n"},
	}
	require.Equal(testInstance, "git commit -m wip exited with code 1: nothing to commit", failedError.Error())
}

func TestOSCommandRunnerStreamsAndCapturesOutput(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	runner := execshell.NewOSCommandRunnerWithWriters(standardOutput, standardError)

	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName("sh"),
		Details: execshell.CommandDetails{
			Arguments:            []string{"-c", "echo \"$GITP_TEST_VALUE\"; echo problem 1>&2; exit 3"},
			WorkingDirectory:     testInstance.TempDir(),
			EnvironmentVariables: map[string]string{"GITP_TEST_VALUE": "streamed"},
		},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 3, result.ExitCode)
	require.Equal(testInstance, "streamed\n", standardOutput.String())
	require.Equal(testInstance, "problem\n", standardError.String())
	require.Equal(testInstance, "problem\n", result.StandardError)
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunnerWithWriters(nil, nil)
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("gitp-missing-executable")})
	require.Error(testInstance, runError)
}

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.InfoLevel)
	eventLogger := execshell.NewConsoleCommandEventLogger(zap.New(observerCore))
	command := execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"add", "."}}}

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1})
	eventLogger.CommandExecutionFailed(command, errors.New("boom"))

	entries := observerLogs.All()
	require.Len(testInstance, entries, 4)
	require.Equal(testInstance, "Staging . in current directory", entries[0].Message)
	require.Equal(testInstance, zap.InfoLevel, entries[1].Level)
	require.Equal(testInstance, zap.WarnLevel, entries[2].Level)
	require.Equal(testInstance, zap.ErrorLevel, entries[3].Level)
}
