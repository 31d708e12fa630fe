package dependencies_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitp/internal/dependencies"
	"github.com/temirov/gitp/internal/execshell"
	"github.com/temirov/gitp/internal/gitrepo"
	"github.com/temirov/gitp/internal/hosting"
	"github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/prompt"
	"github.com/temirov/gitp/internal/prompt/prompttest"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type stubIdentityWriter struct{}

func (stubIdentityWriter) ApplyIdentity(repositoryPath string, identity gitrepo.Identity) error {
	return nil
}

type stubHTTPClient struct {
	hosting.HTTPClient
}

func TestResolveGitExecutor(testInstance *testing.T) {
	existing := stubGitExecutor{}
	resolved, resolveError := dependencies.ResolveGitExecutor(existing, zap.NewNop(), dependencies.GitExecutorOptions{})
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)

	defaultExecutor, defaultError := dependencies.ResolveGitExecutor(nil, nil, dependencies.GitExecutorOptions{GitBinary: "git"})
	require.NoError(testInstance, defaultError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, defaultExecutor)
}

func TestResolveIdentityCollaborators(testInstance *testing.T) {
	require.Equal(testInstance, stubIdentityWriter{}, dependencies.ResolveIdentityWriter(stubIdentityWriter{}))
	require.IsType(testInstance, gitrepo.IdentityWriter{}, dependencies.ResolveIdentityWriter(nil))
	require.IsType(testInstance, gitrepo.GlobalIdentityReader{}, dependencies.ResolveGlobalIdentityReader(nil))
}

func TestResolveProfileStore(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	lookup := func(key string) (string, bool) {
		if key == "HOME" {
			return homeDirectory, true
		}
		return "", false
	}

	testCases := []struct {
		name         string
		overridePath string
		expectedPath string
	}{
		{
			name:         "default_location",
			expectedPath: filepath.Join(homeDirectory, ".config", "profiles.json"),
		},
		{
			name:         "home_relative_override",
			overridePath: "~/alt/profiles.json",
			expectedPath: filepath.Join(homeDirectory, "alt", "profiles.json"),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			persistence, resolveError := dependencies.ResolveProfileStore(nil, lookup, testCase.overridePath, zap.NewNop())
			require.NoError(testInstance, resolveError)
			store, isStore := persistence.(*profiles.Store)
			require.True(testInstance, isStore)
			require.Equal(testInstance, testCase.expectedPath, store.Path())
		})
	}

	existing := profiles.NewStore(filepath.Join(homeDirectory, "explicit.json"), zap.NewNop())
	resolved, resolveError := dependencies.ResolveProfileStore(existing, lookup, "", zap.NewNop())
	require.NoError(testInstance, resolveError)
	require.Same(testInstance, existing, resolved)
}

func TestResolvePrompter(testInstance *testing.T) {
	scripted := prompttest.New()
	require.Same(testInstance, scripted, dependencies.ResolvePrompter(scripted, strings.NewReader(""), &bytes.Buffer{}))

	outputBuffer := &bytes.Buffer{}
	fallback := dependencies.ResolvePrompter(nil, strings.NewReader("answer\n"), outputBuffer)
	answer, askError := fallback.AskText(prompt.TextRequest{Label: "Question:"})
	require.NoError(testInstance, askError)
	require.Equal(testInstance, "answer", answer)
	require.Contains(testInstance, outputBuffer.String(), "Question:")
}

func TestResolveTransport(testInstance *testing.T) {
	configuration := hosting.TransportConfiguration{RequestTimeout: 3 * time.Second, GitHubAPIURL: "https://ghe.example.com/api/v3"}

	defaultTransport := dependencies.ResolveTransport(configuration, nil)
	require.NotNil(testInstance, defaultTransport.HTTPClient)
	require.Equal(testInstance, 3*time.Second, defaultTransport.RequestTimeout)
	require.Equal(testInstance, "https://ghe.example.com/api/v3", defaultTransport.GitHubAPIURL)

	client := stubHTTPClient{}
	injectedTransport := dependencies.ResolveTransport(configuration, client)
	require.Equal(testInstance, client, injectedTransport.HTTPClient)
}
