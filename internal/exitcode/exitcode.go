// Package exitcode defines exit codes for the CLI.
package exitcode

import "todos/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad flags).
	UserError = 1

	// RejectedError indicates the service answered with a non-success status.
	RejectedError = 2

	// BackendError indicates a transport or decode error.
	BackendError = 3
)

// ForError maps an operation failure to an exit code.
func ForError(err error) int {
	if service.KindOf(err) == service.KindBadRequest {
		return RejectedError
	}
	return BackendError
}
