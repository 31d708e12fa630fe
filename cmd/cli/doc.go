// Package cli constructs the gitp command-line interface. It wires the Cobra
// command tree to the viper configuration loader and the zap logger, and
// registers the profiles group alongside the repos, clone, config and commit
// commands.
package cli
