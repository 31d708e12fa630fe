package gitflow

import (
	"github.com/temirov/gitp/internal/dependencies"
	"github.com/temirov/gitp/internal/gitrepo"
	"github.com/temirov/gitp/internal/profiles"
)

func applyProfileIdentity(writer dependencies.IdentityWriter, repositoryPath string, profile profiles.Profile) error {
	return dependencies.ResolveIdentityWriter(writer).ApplyIdentity(repositoryPath, gitrepo.Identity{
		Name:  profile.GitIdentity.CommitName,
		Email: profile.GitIdentity.CommitEmail,
	})
}
