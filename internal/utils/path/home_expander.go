package pathutils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
	homeEnvironmentVariableConstant = "HOME"
	homeNotSetMessageConstant       = "HOME environment variable is not set"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// ErrHomeNotSet indicates the environment does not name a home directory.
var ErrHomeNotSet = errors.New(homeNotSetMessageConstant)

// EnvironmentLookup reads an environment variable; os.LookupEnv satisfies it.
type EnvironmentLookup func(key string) (string, bool)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// NewEnvironmentHomeDirectoryProvider resolves the home directory from HOME
// through lookup. A missing or blank value yields ErrHomeNotSet.
func NewEnvironmentHomeDirectoryProvider(lookup EnvironmentLookup) HomeDirectoryProvider {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return func() (string, error) {
		homeDirectory, homeDefined := lookup(homeEnvironmentVariableConstant)
		if !homeDefined || len(strings.TrimSpace(homeDirectory)) == 0 {
			return "", ErrHomeNotSet
		}
		return homeDirectory, nil
	}
}

// HomeExpander converts user home shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander reading HOME from the process environment.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(NewEnvironmentHomeDirectoryProvider(os.LookupEnv))
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = NewEnvironmentHomeDirectoryProvider(os.LookupEnv)
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// HomeDirectory returns the resolved home directory or the provider failure.
func (expander *HomeExpander) HomeDirectory() (string, error) {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	return expander.homeDirectory, expander.homeDirectoryError
}

// Expand resolves a leading tilde to the user's home directory. Paths without
// a tilde are returned unchanged; a tilde path fails when no home is known.
func (expander *HomeExpander) Expand(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if !strings.HasPrefix(trimmedPath, tildeSymbolConstant) {
		return trimmedPath, nil
	}

	var relativePath string
	switch {
	case trimmedPath == tildeSymbolConstant:
	case strings.HasPrefix(trimmedPath, tildeForwardSlashPrefixConstant):
		relativePath = strings.TrimPrefix(trimmedPath, tildeForwardSlashPrefixConstant)
	case strings.HasPrefix(trimmedPath, tildeWithPathSeparatorPrefix):
		relativePath = strings.TrimPrefix(trimmedPath, tildeWithPathSeparatorPrefix)
	default:
		return trimmedPath, nil
	}

	homeDirectory, homeError := expander.HomeDirectory()
	if homeError != nil {
		return "", homeError
	}
	return filepath.Join(homeDirectory, relativePath), nil
}
