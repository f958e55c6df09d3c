// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, out of range, unsupported).
	UserError = 1

	// ConfigError indicates an invalid configuration or a missing credential.
	ConfigError = 2

	// BackendError indicates a storage, snapshot or network error.
	BackendError = 3
)
