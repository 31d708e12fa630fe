package gitrepo

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

const (
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	unsupportedProtocolTemplateConstant = "unsupported protocol %q"
	missingRepositoryMessageConstant    = "no repository name in url"
	requiredValueMessageConstant        = "value required"
)

// RemoteProtocol names the transport a clone URL uses.
type RemoteProtocol string

// Protocols git clone accepts from gitp.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
	RemoteProtocolHTTP  RemoteProtocol = RemoteProtocol("http")
	RemoteProtocolGit   RemoteProtocol = RemoteProtocol("git")
	RemoteProtocolFile  RemoteProtocol = RemoteProtocol("file")
)

var supportedProtocols = map[RemoteProtocol]struct{}{
	RemoteProtocolSSH:   {},
	RemoteProtocolHTTPS: {},
	RemoteProtocolHTTP:  {},
	RemoteProtocolGit:   {},
	RemoteProtocolFile:  {},
}

// RemoteURL is a clone URL split into its transport, host and repository path.
// Path keeps every namespace segment (GitLab subgroups included) and drops the .git suffix.
type RemoteURL struct {
	Protocol RemoteProtocol
	Host     string
	Path     string
}

// RepositoryName returns the final path segment.
func (remote RemoteURL) RepositoryName() string {
	return path.Base(remote.Path)
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL accepts scp-style (git@host:group/repo.git), ssh://, https://,
// http://, git:// and local path remotes.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimRight(strings.TrimSpace(remote), pathSeparatorConstant)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	endpoint, endpointError := transport.NewEndpoint(trimmedRemote)
	if endpointError != nil {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: endpointError.Error()}
	}

	protocol := RemoteProtocol(strings.ToLower(endpoint.Protocol))
	if _, supported := supportedProtocols[protocol]; !supported {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: fmt.Sprintf(unsupportedProtocolTemplateConstant, endpoint.Protocol)}
	}

	repositoryPath := strings.TrimSuffix(endpoint.Path, gitSuffixConstant)
	if protocol != RemoteProtocolFile {
		repositoryPath = strings.TrimLeft(repositoryPath, pathSeparatorConstant)
	}
	if name := path.Base(repositoryPath); len(repositoryPath) == 0 || name == pathSeparatorConstant || name == "." {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: missingRepositoryMessageConstant}
	}
	if strings.HasSuffix(repositoryPath, pathSeparatorConstant) {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: missingRepositoryMessageConstant}
	}

	return RemoteURL{Protocol: protocol, Host: endpoint.Host, Path: repositoryPath}, nil
}

// RepositoryDirectoryName derives the directory git clone would create for a remote.
func RepositoryDirectoryName(remote string) (string, error) {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return "", parseError
	}
	return parsedRemote.RepositoryName(), nil
}
