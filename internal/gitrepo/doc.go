// Package gitrepo contains helpers for working with local Git repositories.
//
// It parses remote URLs, derives clone directory names, and reads or writes
// the commit identity stored in git configuration through go-git.
package gitrepo
