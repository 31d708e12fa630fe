package gitrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

const (
	openRepositoryErrorTemplateConstant   = "unable to open git repository at %s: %w"
	readConfigErrorTemplateConstant       = "unable to read git configuration of %s: %w"
	writeConfigErrorTemplateConstant      = "unable to write git configuration of %s: %w"
	readGlobalConfigErrorTemplateConstant = "unable to read global git configuration: %w"
	identityFieldNameConstant             = "user.name"
	identityFieldEmailConstant            = "user.email"
	missingIdentityTemplateConstant       = "%s is not set"
	currentDirectoryConstant              = "."
)

// ErrIdentityNotConfigured indicates git has no user.name or user.email to offer.
var ErrIdentityNotConfigured = errors.New("git identity is not configured")

// Identity is the author identity recorded on commits.
type Identity struct {
	Name  string
	Email string
}

// MissingIdentityError reports which identity field the configuration lacks.
type MissingIdentityError struct {
	Field string
}

// Error describes the missing field.
func (missingError MissingIdentityError) Error() string {
	return fmt.Sprintf(missingIdentityTemplateConstant, missingError.Field)
}

// Is reports whether target is ErrIdentityNotConfigured.
func (missingError MissingIdentityError) Is(target error) bool {
	return target == ErrIdentityNotConfigured
}

// IdentityWriter stores commit identities in a repository's local configuration.
type IdentityWriter struct{}

// NewIdentityWriter constructs an IdentityWriter.
func NewIdentityWriter() IdentityWriter {
	return IdentityWriter{}
}

// ApplyIdentity writes user.name and user.email into the local config of the
// repository containing repositoryPath. Parent directories are searched for
// the .git directory.
func (writer IdentityWriter) ApplyIdentity(repositoryPath string, identity Identity) error {
	resolvedPath := strings.TrimSpace(repositoryPath)
	if len(resolvedPath) == 0 {
		resolvedPath = currentDirectoryConstant
	}

	repository, openError := git.PlainOpenWithOptions(resolvedPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return fmt.Errorf(openRepositoryErrorTemplateConstant, resolvedPath, openError)
	}

	repositoryConfig, configError := repository.Config()
	if configError != nil {
		return fmt.Errorf(readConfigErrorTemplateConstant, resolvedPath, configError)
	}

	repositoryConfig.User.Name = identity.Name
	repositoryConfig.User.Email = identity.Email

	if writeError := repository.SetConfig(repositoryConfig); writeError != nil {
		return fmt.Errorf(writeConfigErrorTemplateConstant, resolvedPath, writeError)
	}
	return nil
}

// GlobalIdentityReader reads the identity configured for the current user.
type GlobalIdentityReader struct {
	loadConfiguration func(scope config.Scope) (*config.Config, error)
}

// NewGlobalIdentityReader constructs a reader over ~/.gitconfig and $XDG_CONFIG_HOME/git/config.
func NewGlobalIdentityReader() GlobalIdentityReader {
	return GlobalIdentityReader{loadConfiguration: config.LoadConfig}
}

// ReadGlobalIdentity returns user.name and user.email from the global scope.
// MissingIdentityError is returned when either is blank.
func (reader GlobalIdentityReader) ReadGlobalIdentity() (Identity, error) {
	loadConfiguration := reader.loadConfiguration
	if loadConfiguration == nil {
		loadConfiguration = config.LoadConfig
	}

	globalConfig, loadError := loadConfiguration(config.GlobalScope)
	if loadError != nil {
		return Identity{}, fmt.Errorf(readGlobalConfigErrorTemplateConstant, loadError)
	}

	identity := Identity{
		Name:  strings.TrimSpace(globalConfig.User.Name),
		Email: strings.TrimSpace(globalConfig.User.Email),
	}
	if len(identity.Name) == 0 {
		return Identity{}, MissingIdentityError{Field: identityFieldNameConstant}
	}
	if len(identity.Email) == 0 {
		return Identity{}, MissingIdentityError{Field: identityFieldEmailConstant}
	}
	return identity, nil
}
