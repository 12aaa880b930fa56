package errors

import "fmt"

// Common error messages for the gitchangelog CLI.
// These templates ensure consistent, actionable error messages.

// InvalidConfig creates an error for a manifest, rc file or flag that could
// not be loaded.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check package.json (or composer.json) and .changelogrc for syntax errors",
		"Run with --debug to see which configuration layers were read",
	)
}

// GitNotRepository creates an error when dir is not inside a git repository.
func GitNotRepository(dir string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("not a git repository: %s", dir),
		"Run gitchangelog from inside a repository",
		"Or point it at one with --dir <path>",
	)
}

// HistoryQueryFailed creates an error when the full-history query fails.
func HistoryQueryFailed(err error) *CLIError {
	return WrapWithMessage(err, HistoryQuery,
		"could not read the commit history",
		"Check that git is installed and in your PATH: git --version",
		"Verify the repository is readable: git log -1",
	)
}

// TagQueryFailed creates an error when the latest-tag query fails.
func TagQueryFailed(err error) *CLIError {
	return WrapWithMessage(err, TagQuery,
		"could not read the latest tag",
		"Verify tags are readable: git log --tags -1",
	)
}

// FileNotWritable creates an error when an output file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Write,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// MalformedHistory creates an error when the history output cannot be parsed.
func MalformedHistory(err error) *CLIError {
	return WrapWithMessage(err, HistoryQuery,
		"unexpected commit history format",
		"Check for a git alias or config that overrides 'git log' output",
	)
}
