// Package hosting models source-hosting credentials and the repository
// listing capability each of them carries.
//
// Credential is a closed set of variants (GitHubCredential, GitLabCredential).
// Callers hold the interface and call ListRepositories with a Transport; the
// variant decides which provider endpoint to query.
package hosting
