// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging, lifecycle events and
// typed failures. OSCommandRunner is the os/exec backed runner gitp uses to
// run git clone, add and commit with their output streamed to the terminal.
package execshell
