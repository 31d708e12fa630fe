package hosting

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultGitLabHost is used when a GitLab credential does not name a host.
	DefaultGitLabHost = "gitlab.com"

	maskedTokenConstant               = "****"
	gitHubSummaryTemplateConstant     = "GitHub (token: %s)"
	gitLabSummaryTemplateConstant     = "GitLab (host: %s, token: %s)"
	repositoryDisplayTemplateConstant = "%s (%s)"
)

// Provider names a supported source-hosting service.
type Provider string

// Supported providers.
const (
	ProviderGitHub Provider = Provider("GitHub")
	ProviderGitLab Provider = Provider("GitLab")
)

// Providers returns the known providers in presentation order.
func Providers() []Provider {
	return []Provider{ProviderGitHub, ProviderGitLab}
}

// Repository is a remote repository visible to a credential.
type Repository struct {
	URL         string `json:"url" yaml:"url"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	CloneURL    string `json:"clone_url,omitempty" yaml:"clone_url,omitempty"`
}

// String renders the repository for selection lists.
func (repository Repository) String() string {
	return fmt.Sprintf(repositoryDisplayTemplateConstant, repository.DisplayName, repository.URL)
}

// CloneSource returns the URL git should clone from.
func (repository Repository) CloneSource() string {
	if len(strings.TrimSpace(repository.CloneURL)) > 0 {
		return repository.CloneURL
	}
	return repository.URL
}

// Credential is a hosting credential able to list the repositories it can see.
//
// The set of implementations is closed: GitHubCredential and GitLabCredential.
type Credential interface {
	// Provider identifies the hosting service.
	Provider() Provider
	// Summary renders the credential with its secret masked.
	Summary() string
	// ListRepositories fetches the first page of repositories visible to the credential.
	ListRepositories(executionContext context.Context, transport Transport) ([]Repository, error)

	sealedCredential()
}

// GitHubCredential authenticates against the GitHub REST API.
type GitHubCredential struct {
	Token string
}

// GitLabCredential authenticates against a GitLab instance.
type GitLabCredential struct {
	Token string
	Host  string
}

// Provider implements Credential.
func (GitHubCredential) Provider() Provider {
	return ProviderGitHub
}

// Summary implements Credential.
func (credential GitHubCredential) Summary() string {
	return fmt.Sprintf(gitHubSummaryTemplateConstant, maskedTokenConstant)
}

// ListRepositories implements Credential.
func (credential GitHubCredential) ListRepositories(executionContext context.Context, transport Transport) ([]Repository, error) {
	return listGitHubRepositories(executionContext, transport, credential.Token)
}

func (GitHubCredential) sealedCredential() {}

// Provider implements Credential.
func (GitLabCredential) Provider() Provider {
	return ProviderGitLab
}

// Summary implements Credential.
func (credential GitLabCredential) Summary() string {
	return fmt.Sprintf(gitLabSummaryTemplateConstant, credential.ResolvedHost(), maskedTokenConstant)
}

// ListRepositories implements Credential.
func (credential GitLabCredential) ListRepositories(executionContext context.Context, transport Transport) ([]Repository, error) {
	return listGitLabRepositories(executionContext, transport, credential.Token, credential.ResolvedHost())
}

// ResolvedHost returns the configured host or DefaultGitLabHost.
func (credential GitLabCredential) ResolvedHost() string {
	trimmedHost := strings.TrimSpace(credential.Host)
	if len(trimmedHost) == 0 {
		return DefaultGitLabHost
	}
	return trimmedHost
}

func (GitLabCredential) sealedCredential() {}
