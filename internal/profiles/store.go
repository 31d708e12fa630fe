package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	pathutils "github.com/temirov/gitp/internal/utils/path"
	"github.com/temirov/gitp/internal/version"
)

const (
	storeRelativePathConstant         = ".config/profiles.json"
	storeDirectoryPermissionsConstant = 0o700
	storeFilePermissionsConstant      = 0o600
	storeTemporaryPatternConstant     = ".profiles-*.json.tmp"
	storeIndentConstant               = "  "
	readStoreTemplateConstant         = "read profile store %s: %w"
	writeStoreTemplateConstant        = "write profile store %s: %w"
	encodeStoreTemplateConstant       = "encode profile store: %w"
	storedProfileTemplateConstant     = "profile %d: %w"
	storeLoadedMessageConstant        = "Loaded profile store"
	storeSavedMessageConstant         = "Saved profile store"
	logFieldPathConstant              = "path"
	logFieldProfileCountConstant      = "profiles"
	logFieldVersionConstant           = "version"
)

// EnvironmentLookup reads an environment variable; os.LookupEnv satisfies it.
type EnvironmentLookup = pathutils.EnvironmentLookup

// ResolveStorePath derives $HOME/.config/profiles.json from lookup.
func ResolveStorePath(lookup EnvironmentLookup) (string, error) {
	homeDirectory, homeError := pathutils.NewEnvironmentHomeDirectoryProvider(lookup)()
	if homeError != nil {
		return "", homeError
	}
	return filepath.Join(homeDirectory, filepath.FromSlash(storeRelativePathConstant)), nil
}

// ResolveStorePathWithOverride returns the override, with a leading tilde
// expanded, when it is non-blank and the default store path otherwise.
func ResolveStorePathWithOverride(lookup EnvironmentLookup, overridePath string) (string, error) {
	if len(strings.TrimSpace(overridePath)) == 0 {
		return ResolveStorePath(lookup)
	}
	expander := pathutils.NewHomeExpanderWithProvider(pathutils.NewEnvironmentHomeDirectoryProvider(lookup))
	return expander.Expand(overridePath)
}

type storeDocument struct {
	Profiles []Profile `json:"profiles"`
	Version  string    `json:"version"`
}

type rawStoreDocument struct {
	Profiles []json.RawMessage `json:"profiles"`
	Version  string            `json:"version"`
}

// Store persists profiles as a single versioned JSON document.
//
// Reads and writes replace the whole document; concurrent writers are not
// coordinated and the last rename wins.
type Store struct {
	path               string
	applicationVersion string
	logger             *zap.Logger
}

// NewStore constructs a Store for the document at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, applicationVersion: version.Version, logger: logger}
}

// Path returns the location of the store document.
func (store *Store) Path() string {
	return store.path
}

// Load reads every profile from the store document, migrating legacy
// documents in memory.
func (store *Store) Load(executionContext context.Context) ([]Profile, error) {
	if contextError := contextFailure(executionContext); contextError != nil {
		return nil, contextError
	}

	contents, readError := os.ReadFile(store.path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, NotFoundError{Subject: storeSubjectConstant, Name: store.path}
		}
		return nil, fmt.Errorf(readStoreTemplateConstant, store.path, readError)
	}

	profiles, decodeError := store.decode(contents)
	if decodeError != nil {
		return nil, ParseError{Source: store.path, Cause: decodeError}
	}
	return profiles, nil
}

// LoadOrEmpty behaves like Load but treats a missing store document as empty.
func (store *Store) LoadOrEmpty(executionContext context.Context) ([]Profile, error) {
	profiles, loadError := store.Load(executionContext)
	if loadError == nil {
		return profiles, nil
	}

	var notFoundError NotFoundError
	if errors.As(loadError, &notFoundError) && notFoundError.Subject == storeSubjectConstant {
		return []Profile{}, nil
	}
	return nil, loadError
}

// Save replaces the store document with profiles stamped with the running version.
func (store *Store) Save(executionContext context.Context, profiles []Profile) error {
	if contextError := contextFailure(executionContext); contextError != nil {
		return contextError
	}

	document := storeDocument{Profiles: profiles, Version: store.applicationVersion}
	if document.Profiles == nil {
		document.Profiles = []Profile{}
	}
	contents, encodeError := json.MarshalIndent(document, "", storeIndentConstant)
	if encodeError != nil {
		return fmt.Errorf(encodeStoreTemplateConstant, encodeError)
	}
	contents = append(contents, '\n')

	if writeError := writeFileAtomically(store.path, contents); writeError != nil {
		return fmt.Errorf(writeStoreTemplateConstant, store.path, writeError)
	}

	store.logger.Debug(
		storeSavedMessageConstant,
		zap.String(logFieldPathConstant, store.path),
		zap.Int(logFieldProfileCountConstant, len(document.Profiles)),
		zap.String(logFieldVersionConstant, document.Version),
	)
	return nil
}

func (store *Store) decode(contents []byte) ([]Profile, error) {
	if validationError := validateStoreDocument(contents); validationError != nil {
		return nil, validationError
	}

	var document rawStoreDocument
	if decodeError := json.Unmarshal(contents, &document); decodeError != nil {
		return nil, decodeError
	}

	legacyDocument := isLegacyStoreVersion(document.Version)
	profiles := make([]Profile, 0, len(document.Profiles))
	for profileIndex, rawProfile := range document.Profiles {
		if legacyDocument {
			migratedProfile, migrationError := migrateLegacyProfile(rawProfile, document.Version, store.logger)
			if migrationError != nil {
				return nil, migrationError
			}
			rawProfile = migratedProfile
		}

		var profile Profile
		if decodeError := json.Unmarshal(rawProfile, &profile); decodeError != nil {
			return nil, fmt.Errorf(storedProfileTemplateConstant, profileIndex, decodeError)
		}
		if validationError := profile.Validate(); validationError != nil {
			return nil, fmt.Errorf(storedProfileTemplateConstant, profileIndex, validationError)
		}
		profiles = append(profiles, profile)
	}

	store.logger.Debug(
		storeLoadedMessageConstant,
		zap.String(logFieldPathConstant, store.path),
		zap.Int(logFieldProfileCountConstant, len(profiles)),
		zap.String(logFieldVersionConstant, document.Version),
	)
	return profiles, nil
}

// writeFileAtomically writes contents to a sibling temporary file and renames
// it over targetPath so readers never observe a partial document.
func writeFileAtomically(targetPath string, contents []byte) (writeError error) {
	directory := filepath.Dir(targetPath)
	if mkdirError := os.MkdirAll(directory, storeDirectoryPermissionsConstant); mkdirError != nil {
		return mkdirError
	}

	temporaryFile, createError := os.CreateTemp(directory, storeTemporaryPatternConstant)
	if createError != nil {
		return createError
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if writeError != nil {
			_ = temporaryFile.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if chmodError := temporaryFile.Chmod(storeFilePermissionsConstant); chmodError != nil {
		return chmodError
	}
	if _, writeError = temporaryFile.Write(contents); writeError != nil {
		return writeError
	}
	if syncError := temporaryFile.Sync(); syncError != nil {
		return syncError
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return closeError
	}
	return os.Rename(temporaryPath, targetPath)
}

func contextFailure(executionContext context.Context) error {
	if executionContext == nil {
		return nil
	}
	return executionContext.Err()
}
