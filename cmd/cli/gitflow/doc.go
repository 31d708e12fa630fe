// Package gitflow provides the repos, clone, config and commit commands that
// drive git with the identity of a stored profile.
package gitflow
