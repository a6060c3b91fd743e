package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// Exit codes for htmlcheck.
const (
	// ExitSuccess indicates every checked document passed.
	ExitSuccess = 0

	// ExitIssues indicates at least one document failed validation.
	ExitIssues = 1

	// ExitUsageError indicates invalid command-line usage or configuration.
	ExitUsageError = 2

	// ExitIOError indicates a document or report could not be read or written.
	ExitIOError = 3
)

var (
	// ErrIssuesFound is returned when at least one document fails.
	ErrIssuesFound = errors.New("validation issues found")

	// ErrUsage wraps invalid flags and arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrIO wraps runs in which some documents could not be processed.
	ErrIO = errors.New("i/o error")
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrUsage), errors.Is(err, ErrConfig):
		return ExitUsageError
	case errors.Is(err, ErrIO),
		errors.Is(err, lint.ErrFileNotFound),
		errors.Is(err, lint.ErrPermissionDenied),
		errors.Is(err, lint.ErrWriteFailure),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitUsageError
	}
}
