// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found).
	UserError = 1

	// AuthError indicates the token is missing, expired or revoked.
	AuthError = 2

	// BackendError indicates a remote API or network failure.
	BackendError = 3

	// LocalError indicates the note store or sync state is unreadable.
	LocalError = 4

	// LockError indicates another sync invocation holds the lock.
	LockError = 5
)
