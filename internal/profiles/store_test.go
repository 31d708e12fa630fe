package profiles_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitp/internal/hosting"
	"github.com/temirov/gitp/internal/profiles"
	"github.com/temirov/gitp/internal/version"
)

const (
	homeVariableConstant    = "HOME"
	storeFileNameConstant   = "profiles.json"
	currentDocumentConstant = `{
  "profiles": [
    {
      "name": "Work",
      "git": {"commit_name": "Jane", "commit_email": "jane@work.example"},
      "api_adapter": {"GitHub": {"token": "ghp_work"}}
    },
    {
      "name": "Personal",
      "git": {"commit_name": "Jane", "commit_email": "jane@home.example"}
    },
    {
      "name": "Lab",
      "git": {"commit_name": "Jane", "commit_email": "jane@lab.example"},
      "api_adapter": {"GitLab": {"token": "glpat", "host": "gitlab.example.com"}}
    }
  ],
  "version": "1.0"
}`
)

func environmentWithHome(homeDirectory string) profiles.EnvironmentLookup {
	return func(key string) (string, bool) {
		if key == homeVariableConstant {
			return homeDirectory, true
		}
		return "", false
	}
}

func writeStoreDocument(testInstance *testing.T, contents string) string {
	testInstance.Helper()
	storePath := filepath.Join(testInstance.TempDir(), storeFileNameConstant)
	require.NoError(testInstance, os.WriteFile(storePath, []byte(contents), 0o600))
	return storePath
}

func TestResolveStorePath(testInstance *testing.T) {
	testCases := []struct {
		name          string
		lookup        profiles.EnvironmentLookup
		override      string
		expectedPath  string
		expectedError error
	}{
		{
			name:         "home_defined",
			lookup:       environmentWithHome("/home/jane"),
			expectedPath: filepath.Join("/home/jane", ".config", "profiles.json"),
		},
		{
			name:          "home_missing",
			lookup:        func(string) (string, bool) { return "", false },
			expectedError: profiles.ErrHomeNotSet,
		},
		{
			name:          "home_blank",
			lookup:        environmentWithHome("   "),
			expectedError: profiles.ErrHomeNotSet,
		},
		{
			name:         "override_with_tilde",
			lookup:       environmentWithHome("/home/jane"),
			override:     "~/profiles/gitp.json",
			expectedPath: filepath.Join("/home/jane", "profiles", "gitp.json"),
		},
		{
			name:         "absolute_override_ignores_home",
			lookup:       func(string) (string, bool) { return "", false },
			override:     "/srv/gitp/profiles.json",
			expectedPath: "/srv/gitp/profiles.json",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			resolvedPath, resolveError := profiles.ResolveStorePathWithOverride(testCase.lookup, testCase.override)
			if testCase.expectedError != nil {
				require.ErrorIs(subtest, resolveError, testCase.expectedError)
				return
			}
			require.NoError(subtest, resolveError)
			require.Equal(subtest, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestStoreLoadFailures(testInstance *testing.T) {
	testCases := []struct {
		name          string
		contents      *string
		expectedError func(subtest *testing.T, loadError error)
	}{
		{
			name: "missing_file",
			expectedError: func(subtest *testing.T, loadError error) {
				require.ErrorIs(subtest, loadError, profiles.ErrNotFound)
				var notFoundError profiles.NotFoundError
				require.True(subtest, errors.As(loadError, &notFoundError))
				require.Equal(subtest, "profile store", notFoundError.Subject)
			},
		},
		{
			name:     "not_json",
			contents: stringPointer("profiles = []"),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "missing_profiles_key",
			contents: stringPointer(`{"version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "profile_without_identity",
			contents: stringPointer(`{"profiles": [{"name": "Work"}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "unknown_credential_variant",
			contents: stringPointer(`{"profiles": [{"name": "Work", "git": {"commit_name": "a", "commit_email": "a@b"}, "api_adapter": {"Gitea": {"token": "t"}}}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "blank_identity",
			contents: stringPointer(`{"profiles": [{"name": "", "git": {"commit_name": "", "commit_email": ""}}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "whitespace_commit_name",
			contents: stringPointer(`{"profiles": [{"name": "Work", "git": {"commit_name": "  ", "commit_email": "a@b"}}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
				require.ErrorIs(subtest, loadError, profiles.ErrValidation)
			},
		},
		{
			name:     "empty_token",
			contents: stringPointer(`{"profiles": [{"name": "Work", "git": {"commit_name": "a", "commit_email": "a@b"}, "api_adapter": {"GitHub": {"token": ""}}}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				require.ErrorIs(subtest, loadError, profiles.ErrValidation)
			},
		},
		{
			name:     "case_folded_name_key",
			contents: stringPointer(`{"profiles": [{"name": "A", "Name": "B", "git": {"commit_name": "a", "commit_email": "a@b"}}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "profile_level_tag_in_current_document",
			contents: stringPointer(`{"profiles": [{"name": "Work", "git": {"commit_name": "a", "commit_email": "a@b"}, "adapter": "GitHub"}], "version": "0.3.0"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
		{
			name:     "legacy_tag_in_current_document",
			contents: stringPointer(`{"profiles": [{"name": "Work", "git": {"commit_name": "a", "commit_email": "a@b"}, "api_adapter": {"adapter": "GitHub"}}], "version": "dev"}`),
			expectedError: func(subtest *testing.T, loadError error) {
				var parseError profiles.ParseError
				require.True(subtest, errors.As(loadError, &parseError))
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			storePath := filepath.Join(subtest.TempDir(), storeFileNameConstant)
			if testCase.contents != nil {
				storePath = writeStoreDocument(subtest, *testCase.contents)
			}

			loadedProfiles, loadError := profiles.NewStore(storePath, zap.NewNop()).Load(context.Background())
			require.Error(subtest, loadError)
			require.Nil(subtest, loadedProfiles)
			testCase.expectedError(subtest, loadError)
		})
	}
}

func TestStoreLoadOrEmpty(testInstance *testing.T) {
	missingStore := profiles.NewStore(filepath.Join(testInstance.TempDir(), storeFileNameConstant), nil)
	loadedProfiles, loadError := missingStore.LoadOrEmpty(context.Background())
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedProfiles)

	brokenStore := profiles.NewStore(writeStoreDocument(testInstance, `{"version": "0.3.0"}`), nil)
	_, brokenError := brokenStore.LoadOrEmpty(context.Background())
	var parseError profiles.ParseError
	require.True(testInstance, errors.As(brokenError, &parseError))
}

func TestStoreSaveLoadPreservesProfilesAndOrder(testInstance *testing.T) {
	storePath := writeStoreDocument(testInstance, currentDocumentConstant)
	store := profiles.NewStore(storePath, zap.NewNop())

	loadedProfiles, loadError := store.Load(context.Background())
	require.NoError(testInstance, loadError)
	require.Len(testInstance, loadedProfiles, 3)
	require.Equal(testInstance, hosting.GitHubCredential{Token: "ghp_work"}, loadedProfiles[0].Credential)
	require.Nil(testInstance, loadedProfiles[1].Credential)
	require.Equal(testInstance, hosting.GitLabCredential{Token: "glpat", Host: "gitlab.example.com"}, loadedProfiles[2].Credential)

	require.NoError(testInstance, store.Save(context.Background(), loadedProfiles))

	reloadedProfiles, reloadError := store.Load(context.Background())
	require.NoError(testInstance, reloadError)
	require.Equal(testInstance, loadedProfiles, reloadedProfiles)

	contents, readError := os.ReadFile(storePath)
	require.NoError(testInstance, readError)
	var document struct {
		Version string `json:"version"`
	}
	require.NoError(testInstance, json.Unmarshal(contents, &document))
	require.Equal(testInstance, version.Version, document.Version)
	require.Contains(testInstance, string(contents), "\n  \"profiles\": [")
}

func TestStoreSaveCreatesPrivateFiles(testInstance *testing.T) {
	storePath := filepath.Join(testInstance.TempDir(), "nested", ".config", storeFileNameConstant)
	store := profiles.NewStore(storePath, nil)

	require.NoError(testInstance, store.Save(context.Background(), nil))

	fileInfo, statError := os.Stat(storePath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, os.FileMode(0o600), fileInfo.Mode().Perm())

	directoryInfo, directoryError := os.Stat(filepath.Dir(storePath))
	require.NoError(testInstance, directoryError)
	require.Equal(testInstance, os.FileMode(0o700), directoryInfo.Mode().Perm())

	directoryEntries, listError := os.ReadDir(filepath.Dir(storePath))
	require.NoError(testInstance, listError)
	require.Len(testInstance, directoryEntries, 1)

	loadedProfiles, loadError := store.Load(context.Background())
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedProfiles)
}

func TestStoreMigratesLegacyTagOnlyAdapters(testInstance *testing.T) {
	testCases := []struct {
		name         string
		storeVersion string
		workAdapter  string
	}{
		{name: "missing_version", storeVersion: "", workAdapter: `"api_adapter": {"adapter": "GitHub"}`},
		{name: "old_semantic_version", storeVersion: `"version": "0.1.4",`, workAdapter: `"api_adapter": {"adapter": "GitHub"}`},
		{name: "profile_level_tag", storeVersion: "", workAdapter: `"adapter": "GitHub"`},
		{name: "profile_level_tag_old_version", storeVersion: `"version": "0.1.4",`, workAdapter: `"adapter": "GitHub"`},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			storePath := writeStoreDocument(subtest, `{`+testCase.storeVersion+`
  "profiles": [
    {"name": "Work", "git": {"commit_name": "Jane", "commit_email": "jane@work.example"}, `+testCase.workAdapter+`},
    {"name": "Personal", "git": {"commit_name": "Jane", "commit_email": "jane@home.example"}}
  ]
}`)
			observedCore, observedLogs := observer.New(zapcore.WarnLevel)
			store := profiles.NewStore(storePath, zap.New(observedCore))

			loadedProfiles, loadError := store.Load(context.Background())
			require.NoError(subtest, loadError)
			require.Len(subtest, loadedProfiles, 2)
			require.Equal(subtest, "Work", loadedProfiles[0].Name)
			require.Nil(subtest, loadedProfiles[0].Credential)

			warnings := observedLogs.All()
			require.Len(subtest, warnings, 1)
			require.Equal(subtest, "Work", warnings[0].ContextMap()["profile"])
			require.Equal(subtest, "GitHub", warnings[0].ContextMap()["provider"])

			require.NoError(subtest, store.Save(context.Background(), loadedProfiles))
			contents, readError := os.ReadFile(storePath)
			require.NoError(subtest, readError)
			require.NotContains(subtest, string(contents), `"adapter"`)
		})
	}
}

func TestStoreHonorsCancelledContext(testInstance *testing.T) {
	store := profiles.NewStore(writeStoreDocument(testInstance, currentDocumentConstant), nil)
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, loadError := store.Load(cancelledContext)
	require.ErrorIs(testInstance, loadError, context.Canceled)
	require.ErrorIs(testInstance, store.Save(cancelledContext, nil), context.Canceled)
}

func stringPointer(value string) *string {
	return &value
}
