package hosting

import (
	"context"
	"net/url"
	"strings"
)

const (
	gitLabProjectsPathConstant        = "/api/v4/projects"
	gitLabTokenHeaderConstant         = "PRIVATE-TOKEN"
	gitLabAcceptValueConstant         = "application/json"
	gitLabMembershipParameterConstant = "membership"
	gitLabMembershipValueConstant     = "true"
	gitLabOrderParameterConstant      = "order_by"
	gitLabOrderValueConstant          = "last_activity_at"
	httpsSchemePrefixConstant         = "https://"
	httpSchemePrefixConstant          = "http://"
)

type gitLabProject struct {
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
	HTTPURLToRepo     string `json:"http_url_to_repo"`
}

func listGitLabRepositories(executionContext context.Context, transport Transport, token string, host string) ([]Repository, error) {
	query := url.Values{}
	query.Set(gitLabMembershipParameterConstant, gitLabMembershipValueConstant)
	query.Set(perPageParameterConstant, perPageValueConstant)
	query.Set(gitLabOrderParameterConstant, gitLabOrderValueConstant)
	endpoint := gitLabBaseURL(host) + gitLabProjectsPathConstant + "?" + query.Encode()

	headers := map[string]string{
		gitLabTokenHeaderConstant: token,
		acceptHeaderConstant:      gitLabAcceptValueConstant,
	}

	var projects []gitLabProject
	if requestError := transport.getJSON(executionContext, ProviderGitLab, endpoint, headers, &projects); requestError != nil {
		return nil, requestError
	}

	repositories := make([]Repository, 0, len(projects))
	for _, project := range projects {
		repositories = append(repositories, Repository{
			URL:         project.WebURL,
			DisplayName: project.PathWithNamespace,
			CloneURL:    project.HTTPURLToRepo,
		})
	}
	return repositories, nil
}

// gitLabBaseURL accepts a bare host or a host with an explicit scheme.
func gitLabBaseURL(host string) string {
	trimmedHost := strings.TrimRight(strings.TrimSpace(host), "/")
	if strings.HasPrefix(trimmedHost, httpsSchemePrefixConstant) || strings.HasPrefix(trimmedHost, httpSchemePrefixConstant) {
		return trimmedHost
	}
	return httpsSchemePrefixConstant + trimmedHost
}
