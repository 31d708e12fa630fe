package profiles

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/temirov/gitp/internal/hosting"
)

const (
	profileDisplayTemplateConstant        = "%s: Git (%s, %s)"
	profileSummaryTemplateConstant        = "%s %s"
	nameFieldConstant                     = "name"
	commitNameFieldConstant               = "commit name"
	commitEmailFieldConstant              = "commit email"
	tokenFieldConstant                    = "token"
	credentialFieldConstant               = "api adapter"
	emptyValueMessageConstant             = "value must not be empty"
	credentialVariantTemplateConstant     = "expected exactly one of GitHub or GitLab, found %s"
	unsupportedCredentialTemplateConstant = "unsupported credential type %T"
	credentialKeySeparatorConstant        = ", "
	nullDocumentConstant                  = "null"
	noCredentialKeysDescriptionConstant   = "no variant"
	unknownFieldTemplateConstant          = "unknown profile field %q"
	profileGitKeyConstant                 = "git"
	commitNameKeyConstant                 = "commit_name"
	commitEmailKeyConstant                = "commit_email"
)

// GitIdentity is the author identity written into git configuration.
type GitIdentity struct {
	CommitName  string `json:"commit_name" yaml:"commit_name"`
	CommitEmail string `json:"commit_email" yaml:"commit_email"`
}

// Profile is a named git identity with an optional hosting credential.
type Profile struct {
	Name        string
	GitIdentity GitIdentity
	Credential  hosting.Credential
}

// HasCredential reports whether the profile can talk to a hosting provider.
func (profile Profile) HasCredential() bool {
	return profile.Credential != nil
}

// String renders the profile with its credential masked.
func (profile Profile) String() string {
	identity := fmt.Sprintf(profileDisplayTemplateConstant, profile.Name, profile.GitIdentity.CommitName, profile.GitIdentity.CommitEmail)
	if profile.Credential == nil {
		return identity
	}
	return fmt.Sprintf(profileSummaryTemplateConstant, identity, profile.Credential.Summary())
}

// Validate checks that every required field carries a value.
func (profile Profile) Validate() error {
	requiredFields := []struct {
		field string
		value string
	}{
		{field: nameFieldConstant, value: profile.Name},
		{field: commitNameFieldConstant, value: profile.GitIdentity.CommitName},
		{field: commitEmailFieldConstant, value: profile.GitIdentity.CommitEmail},
	}
	for _, requiredField := range requiredFields {
		if len(strings.TrimSpace(requiredField.value)) == 0 {
			return ValidationError{Field: requiredField.field, Message: emptyValueMessageConstant}
		}
	}

	switch credential := profile.Credential.(type) {
	case nil:
		return nil
	case hosting.GitHubCredential:
		return requireToken(credential.Token)
	case hosting.GitLabCredential:
		return requireToken(credential.Token)
	default:
		return ValidationError{Field: credentialFieldConstant, Message: fmt.Sprintf(unsupportedCredentialTemplateConstant, credential)}
	}
}

func requireToken(token string) error {
	if len(strings.TrimSpace(token)) == 0 {
		return ValidationError{Field: tokenFieldConstant, Message: emptyValueMessageConstant}
	}
	return nil
}

type profileDocument struct {
	Name       string          `json:"name"`
	Git        GitIdentity     `json:"git"`
	APIAdapter json.RawMessage `json:"api_adapter,omitempty"`
}

type gitHubCredentialDocument struct {
	Token string `json:"token"`
}

type gitLabCredentialDocument struct {
	Token string `json:"token"`
	Host  string `json:"host"`
}

// MarshalJSON encodes the profile in the persisted store shape.
func (profile Profile) MarshalJSON() ([]byte, error) {
	document := profileDocument{Name: profile.Name, Git: profile.GitIdentity}
	if profile.Credential != nil {
		encodedCredential, encodeError := encodeCredential(profile.Credential)
		if encodeError != nil {
			return nil, encodeError
		}
		document.APIAdapter = encodedCredential
	}
	return json.Marshal(document)
}

// UnmarshalJSON decodes the persisted store shape. Keys must match exactly;
// encoding/json would otherwise fold "Name" onto "name".
func (profile *Profile) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if decodeError := json.Unmarshal(data, &fields); decodeError != nil {
		return decodeError
	}
	if keyError := requireKnownKeys(fields, nameKeyConstant, profileGitKeyConstant, apiAdapterKeyConstant); keyError != nil {
		return keyError
	}
	if rawIdentity, identityPresent := fields[profileGitKeyConstant]; identityPresent && strings.TrimSpace(string(rawIdentity)) != nullDocumentConstant {
		var identityFields map[string]json.RawMessage
		if decodeError := json.Unmarshal(rawIdentity, &identityFields); decodeError != nil {
			return decodeError
		}
		if keyError := requireKnownKeys(identityFields, commitNameKeyConstant, commitEmailKeyConstant); keyError != nil {
			return keyError
		}
	}

	var document profileDocument
	if decodeError := json.Unmarshal(data, &document); decodeError != nil {
		return decodeError
	}

	credential, credentialError := decodeCredential(document.APIAdapter)
	if credentialError != nil {
		return credentialError
	}

	*profile = Profile{Name: document.Name, GitIdentity: document.Git, Credential: credential}
	return nil
}

func requireKnownKeys(fields map[string]json.RawMessage, knownKeys ...string) error {
	unknownKeys := make([]string, 0)
	for key := range fields {
		if !slices.Contains(knownKeys, key) {
			unknownKeys = append(unknownKeys, key)
		}
	}
	if len(unknownKeys) == 0 {
		return nil
	}
	sort.Strings(unknownKeys)
	return fmt.Errorf(unknownFieldTemplateConstant, unknownKeys[0])
}

func encodeCredential(credential hosting.Credential) (json.RawMessage, error) {
	var variant any
	switch typedCredential := credential.(type) {
	case hosting.GitHubCredential:
		variant = gitHubCredentialDocument{Token: typedCredential.Token}
	case hosting.GitLabCredential:
		variant = gitLabCredentialDocument{Token: typedCredential.Token, Host: typedCredential.Host}
	default:
		return nil, fmt.Errorf("%w: %T", hosting.ErrUnsupportedCredential, credential)
	}
	return json.Marshal(map[hosting.Provider]any{credential.Provider(): variant})
}

// decodeCredential accepts an absent or null adapter, otherwise exactly one known variant key.
func decodeCredential(raw json.RawMessage) (hosting.Credential, error) {
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) == 0 || trimmed == nullDocumentConstant {
		return nil, nil
	}

	var variants map[string]json.RawMessage
	if decodeError := json.Unmarshal(raw, &variants); decodeError != nil {
		return nil, decodeError
	}
	if len(variants) != 1 {
		return nil, fmt.Errorf(credentialVariantTemplateConstant, describeVariantKeys(variants))
	}

	for key, payload := range variants {
		switch hosting.Provider(key) {
		case hosting.ProviderGitHub:
			var document gitHubCredentialDocument
			if decodeError := json.Unmarshal(payload, &document); decodeError != nil {
				return nil, decodeError
			}
			return hosting.GitHubCredential{Token: document.Token}, nil
		case hosting.ProviderGitLab:
			var document gitLabCredentialDocument
			if decodeError := json.Unmarshal(payload, &document); decodeError != nil {
				return nil, decodeError
			}
			return hosting.GitLabCredential{Token: document.Token, Host: document.Host}, nil
		}
	}
	return nil, fmt.Errorf(credentialVariantTemplateConstant, describeVariantKeys(variants))
}

func describeVariantKeys(variants map[string]json.RawMessage) string {
	if len(variants) == 0 {
		return noCredentialKeysDescriptionConstant
	}
	keys := make([]string, 0, len(variants))
	for key := range variants {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, credentialKeySeparatorConstant)
}
