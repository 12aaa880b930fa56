package cli

import (
	clierrors "github.com/ariel-frischer/gitchangelog/internal/errors"
)

// Exit codes for the gitchangelog CLI
// These codes let scripts tell which stage of a run failed
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates an uncategorized failure
	ExitFailure = 1

	// ExitHistoryQuery indicates the commit history could not be read
	ExitHistoryQuery = 2

	// ExitTagQuery indicates the latest tag could not be read
	ExitTagQuery = 3

	// ExitWrite indicates an output file could not be written
	ExitWrite = 4

	// ExitConfig indicates invalid configuration
	ExitConfig = 5
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.HistoryQuery:
		return ExitHistoryQuery
	case clierrors.TagQuery:
		return ExitTagQuery
	case clierrors.Write:
		return ExitWrite
	case clierrors.Configuration:
		return ExitConfig
	default:
		return ExitFailure
	}
}
