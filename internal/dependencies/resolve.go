// Package dependencies supplies the default collaborators of gitp commands
// while letting tests substitute their own.
package dependencies

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/gitp/internal/execshell"
	"github.com/temirov/gitp/internal/gitrepo"
	"github.com/temirov/gitp/internal/hosting"
	"github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/prompt"
)

// GitExecutor runs git subcommands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// IdentityWriter stores a commit identity in a repository's local configuration.
type IdentityWriter interface {
	ApplyIdentity(repositoryPath string, identity gitrepo.Identity) error
}

// GlobalIdentityReader reads the user's global git identity.
type GlobalIdentityReader interface {
	ReadGlobalIdentity() (gitrepo.Identity, error)
}

// GitExecutorOptions configures the default git executor.
type GitExecutorOptions struct {
	GitBinary      string
	StandardOutput io.Writer
	StandardError  io.Writer
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default
// that streams git output and reports lifecycle events through the logger.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, options GitExecutorOptions) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	commandRunner := execshell.NewOSCommandRunnerWithWriters(options.StandardOutput, options.StandardError)
	shellExecutor, creationError := execshell.NewShellExecutor(
		logger,
		commandRunner,
		execshell.WithCommandEventObserver(execshell.NewConsoleCommandEventLogger(logger)),
		execshell.WithGitExecutable(options.GitBinary),
	)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveIdentityWriter returns the provided writer or the go-git backed default.
func ResolveIdentityWriter(existing IdentityWriter) IdentityWriter {
	if existing != nil {
		return existing
	}
	return gitrepo.NewIdentityWriter()
}

// ResolveGlobalIdentityReader returns the provided reader or the go-git backed default.
func ResolveGlobalIdentityReader(existing GlobalIdentityReader) GlobalIdentityReader {
	if existing != nil {
		return existing
	}
	return gitrepo.NewGlobalIdentityReader()
}

// ResolveProfileStore returns the provided persistence or a Store at the configured path.
// A nil lookup reads the process environment.
func ResolveProfileStore(existing profiles.Persistence, lookup profiles.EnvironmentLookup, overridePath string, logger *zap.Logger) (profiles.Persistence, error) {
	if existing != nil {
		return existing, nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	storePath, pathError := profiles.ResolveStorePathWithOverride(lookup, overridePath)
	if pathError != nil {
		return nil, pathError
	}
	return profiles.NewStore(storePath, logger), nil
}

// ResolvePrompter returns the provided prompter or one reading from input.
// Terminal input enables masked passwords and list selection.
func ResolvePrompter(existing prompt.Prompter, input io.Reader, output io.Writer) prompt.Prompter {
	if existing != nil {
		return existing
	}
	if inputFile, isFile := input.(*os.File); isFile {
		return prompt.NewTerminalPrompter(inputFile, output)
	}
	return prompt.NewIOPrompter(input, output)
}

// ResolveTransport builds the hosting transport, substituting client when provided.
func ResolveTransport(configuration hosting.TransportConfiguration, client hosting.HTTPClient) hosting.Transport {
	transport := hosting.NewTransport(configuration)
	if client != nil {
		transport.HTTPClient = client
	}
	return transport
}
