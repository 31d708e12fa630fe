package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/gitp/internal/hosting"
	"github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/utils"
	"github.com/temirov/gitp/internal/version"
)

type applicationRun struct {
	application    *Application
	standardOutput *bytes.Buffer
	logOutput      *bytes.Buffer
}

func runApplication(testInstance *testing.T, arguments ...string) (applicationRun, error) {
	testInstance.Helper()

	logOutput := &bytes.Buffer{}
	standardOutput := &bytes.Buffer{}

	application := NewApplication()
	application.loggerFactory = utils.NewLoggerFactoryWithWriter(logOutput)
	application.rootCommand.SetOut(standardOutput)
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs(arguments)

	executionError := application.Execute()
	return applicationRun{application: application, standardOutput: standardOutput, logOutput: logOutput}, executionError
}

func isolateHome(testInstance *testing.T) string {
	testInstance.Helper()
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)
	testInstance.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDirectory, ".config"))
	return homeDirectory
}

func TestApplicationRegistersCommands(testInstance *testing.T) {
	isolateHome(testInstance)
	run, executionError := runApplication(testInstance)
	require.NoError(testInstance, executionError)

	registeredNames := make([]string, 0)
	for _, subcommand := range run.application.rootCommand.Commands() {
		registeredNames = append(registeredNames, subcommand.Name())
	}
	for _, expectedName := range []string{"profiles", "repos", "clone", "config", "commit"} {
		require.Contains(testInstance, registeredNames, expectedName)
	}
	require.Contains(testInstance, run.standardOutput.String(), "Usage:")
}

func TestApplicationVersionFlag(testInstance *testing.T) {
	isolateHome(testInstance)
	run, executionError := runApplication(testInstance, "--version")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "gitp version "+version.Version+"\n", run.standardOutput.String())
}

func TestApplicationEmbeddedDefaults(testInstance *testing.T) {
	isolateHome(testInstance)
	run, executionError := runApplication(testInstance, "profiles", "list")
	require.NoError(testInstance, executionError)

	configuration := run.application.configuration
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Empty(testInstance, configuration.Profiles.StorePath)
	require.Equal(testInstance, hosting.DefaultRequestTimeout, configuration.Hosting.RequestTimeout)
	require.Equal(testInstance, hosting.DefaultGitHubAPIURL, configuration.Hosting.GitHubAPIURL)
	require.Equal(testInstance, "git", configuration.Git.Binary)

	workflowConfiguration := run.application.workflowConfiguration()
	require.Equal(testInstance, "git", workflowConfiguration.GitBinary)
	require.Equal(testInstance, hosting.DefaultRequestTimeout, workflowConfiguration.Hosting.RequestTimeout)
}

func TestApplicationConfigurationSources(testInstance *testing.T) {
	homeDirectory := isolateHome(testInstance)
	configurationPath := filepath.Join(homeDirectory, "gitp.yaml")
	configurationContent := "hosting:\n  request_timeout: 30s\ngit:\n  binary: /usr/local/bin/git\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	storePath := filepath.Join(homeDirectory, "stores", "work.json")
	testInstance.Setenv("GITP_PROFILES_STORE_PATH", storePath)
	require.NoError(testInstance, profiles.NewStore(storePath, nil).Save(context.Background(), []profiles.Profile{{
		Name:        "work",
		GitIdentity: profiles.GitIdentity{CommitName: "Work Person", CommitEmail: "work@example.com"},
	}}))

	run, executionError := runApplication(testInstance, "--config", configurationPath, "profiles", "list")
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "work: Git (Work Person, work@example.com)\n", run.standardOutput.String())
	require.Equal(testInstance, 30*time.Second, run.application.configuration.Hosting.RequestTimeout)
	require.Equal(testInstance, "/usr/local/bin/git", run.application.configuration.Git.Binary)
	require.Equal(testInstance, storePath, run.application.configuration.Profiles.StorePath)
	require.Equal(testInstance, configurationPath, run.application.configurationMetadata.ConfigFileUsed)
}

func TestApplicationLoggingFlags(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedLevel zapcore.Level
		expectError   bool
		expectLogLine string
	}{
		{
			name:          "verbose_enables_debug",
			arguments:     []string{"-v", "profiles", "list"},
			expectedLevel: zapcore.DebugLevel,
			expectLogLine: configurationInitializedMessageConstant,
		},
		{
			name:          "structured_debug_output",
			arguments:     []string{"--log-level", "debug", "--log-format", "structured", "profiles", "list"},
			expectedLevel: zapcore.DebugLevel,
			expectLogLine: `"msg":"configuration initialized"`,
		},
		{
			name:          "default_level_is_quiet",
			arguments:     []string{"profiles", "list"},
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:        "invalid_level",
			arguments:   []string{"--log-level", "loud", "profiles", "list"},
			expectError: true,
		},
		{
			name:        "invalid_format",
			arguments:   []string{"--log-format", "xml", "profiles", "list"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			isolateHome(testInstance)
			run, executionError := runApplication(testInstance, testCase.arguments...)
			if testCase.expectError {
				require.Error(testInstance, executionError)
				require.Contains(testInstance, executionError.Error(), "unable to create logger")
				return
			}

			require.NoError(testInstance, executionError)
			require.True(testInstance, run.application.logger.Core().Enabled(testCase.expectedLevel))
			require.Equal(testInstance, testCase.expectedLevel == zapcore.DebugLevel, run.application.logger.Core().Enabled(zapcore.DebugLevel))
			if len(testCase.expectLogLine) > 0 {
				require.Contains(testInstance, run.logOutput.String(), testCase.expectLogLine)
			} else {
				require.Empty(testInstance, run.logOutput.String())
			}
		})
	}
}

func TestApplicationReportsMissingConfigurationFile(testInstance *testing.T) {
	homeDirectory := isolateHome(testInstance)
	_, executionError := runApplication(testInstance, "--config", filepath.Join(homeDirectory, "absent.yaml"), "profiles", "list")
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to load configuration")
}
