package filemeta

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := reporter.Run(ctx, config)
//	if errors.Is(err, filemeta.ErrNotADirectory) {
//	    // Handle a bad root path
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotADirectory indicates the scan root does not exist or is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrStatFailed indicates a file's metadata could not be read mid-scan.
	ErrStatFailed = errors.New("stat failed")

	// ErrOutputFailed indicates a report sink could not write its output.
	ErrOutputFailed = errors.New("output failed")

	// ErrDatabase indicates the PostgreSQL sink failed.
	ErrDatabase = errors.New("database error")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrNotADirectory):
		return ExitNotADirectory
	case errors.Is(err, ErrStatFailed):
		return ExitScanFailed
	case errors.Is(err, ErrDatabase):
		return ExitDatabaseError
	case errors.Is(err, ErrOutputFailed):
		return ExitOutputFailed
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "flag needs an argument") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	return ExitGeneralError
}
