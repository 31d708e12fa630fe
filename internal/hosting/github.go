package hosting

import (
	"context"
	"fmt"
	"net/url"
)

const (
	gitHubRepositoriesPathConstant      = "/user/repos"
	gitHubAuthorizationHeaderConstant   = "Authorization"
	gitHubAuthorizationTemplateConstant = "token %s"
	gitHubAcceptValueConstant           = "application/vnd.github.v3+json"
	perPageParameterConstant            = "per_page"
	perPageValueConstant                = "100"
	gitHubSortParameterConstant         = "sort"
	gitHubSortValueConstant             = "updated"
)

type gitHubRepository struct {
	FullName string `json:"full_name"`
	URL      string `json:"url"`
	CloneURL string `json:"clone_url"`
}

func listGitHubRepositories(executionContext context.Context, transport Transport, token string) ([]Repository, error) {
	query := url.Values{}
	query.Set(perPageParameterConstant, perPageValueConstant)
	query.Set(gitHubSortParameterConstant, gitHubSortValueConstant)
	endpoint := transport.resolvedGitHubAPIURL() + gitHubRepositoriesPathConstant + "?" + query.Encode()

	headers := map[string]string{
		gitHubAuthorizationHeaderConstant: fmt.Sprintf(gitHubAuthorizationTemplateConstant, token),
		acceptHeaderConstant:              gitHubAcceptValueConstant,
	}

	var remoteRepositories []gitHubRepository
	if requestError := transport.getJSON(executionContext, ProviderGitHub, endpoint, headers, &remoteRepositories); requestError != nil {
		return nil, requestError
	}

	repositories := make([]Repository, 0, len(remoteRepositories))
	for _, remoteRepository := range remoteRepositories {
		repositories = append(repositories, Repository{
			URL:         remoteRepository.URL,
			DisplayName: remoteRepository.FullName,
			CloneURL:    remoteRepository.CloneURL,
		})
	}
	return repositories, nil
}
