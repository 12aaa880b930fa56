package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Placeholders for the private field separator understood by the changelog
// parser (the ASCII unit separator, 0x1f).
const fieldSep = "%x1f"

// LogFormat returns the pretty format of the full-history query: date, ref
// decorations, hash, subject and parents. Full hashes pair with full parent
// hashes so merge ends can be matched.
func LogFormat(shortHash bool) string {
	fields := []string{"%cd", "%d", "%H", "%s", "%P"}
	if shortHash {
		fields[2], fields[4] = "%h", "%p"
	}
	return strings.Join(fields, fieldSep)
}

// LogArgs returns the git arguments of the full-history query.
func LogArgs(shortHash bool) []string {
	return []string{
		"log",
		"--topo-order",
		"--full-history",
		"--simplify-merges",
		"--date=short",
		"--format=" + LogFormat(shortHash),
	}
}

// LatestTagArgs returns the git arguments of the most-recent-tag query.
func LatestTagArgs() []string {
	return []string{"log", "--tags", "-1", "--format=%d"}
}

// Collector supplies the raw text of the two history queries.
type Collector interface {
	// Log returns the full-history query output, one record per line.
	Log(ctx context.Context) (string, error)
	// LatestTag returns the ref decoration of the most recently tagged
	// commit, or "" when the repository has no tags.
	LatestTag(ctx context.Context) (string, error)
}

// QueryError reports a failed history query.
type QueryError struct {
	// Query names the query, e.g. "history" or "latest tag".
	Query  string
	Args   []string
	Stderr string
	Err    error
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("%s query (git %s) failed: %v", e.Query, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Query names used in QueryError.
const (
	QueryHistory   = "history"
	QueryLatestTag = "latest tag"
)

// execCommand builds the git process; tests replace it with a helper process.
var execCommand = exec.CommandContext

// CLICollector runs the git binary in Dir.
type CLICollector struct {
	Dir       string
	ShortHash bool
}

// NewCLICollector returns a collector running git in dir.
func NewCLICollector(dir string, shortHash bool) *CLICollector {
	return &CLICollector{Dir: dir, ShortHash: shortHash}
}

// Log runs the full-history query. A repository without commits yields ""
// rather than an error.
func (c *CLICollector) Log(ctx context.Context) (string, error) {
	out, err := c.run(ctx, QueryHistory, LogArgs(c.ShortHash))
	var qerr *QueryError
	if errors.As(err, &qerr) && isEmptyRepository(qerr.Stderr) {
		logDebug("[git] Log: repository has no commits")
		return "", nil
	}
	return out, err
}

// LatestTag runs the most-recent-tag query.
func (c *CLICollector) LatestTag(ctx context.Context) (string, error) {
	out, err := c.run(ctx, QueryLatestTag, LatestTagArgs())
	var qerr *QueryError
	if errors.As(err, &qerr) && isEmptyRepository(qerr.Stderr) {
		return "", nil
	}
	return strings.TrimSpace(out), err
}

// command builds the git process for args. Messages are forced to the C
// locale so stderr can be matched.
func (c *CLICollector) command(ctx context.Context, args []string) *exec.Cmd {
	cmd := execCommand(ctx, "git", args...)
	cmd.Dir = c.Dir
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = append(env, "LC_ALL=C")
	return cmd
}

func (c *CLICollector) run(ctx context.Context, query string, args []string) (string, error) {
	cmd := c.command(ctx, args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logDebug("[git] running git %s in %q", strings.Join(args, " "), c.Dir)
	if err := cmd.Run(); err != nil {
		return "", &QueryError{
			Query:  query,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	logDebug("[git] %s query returned %d bytes", query, stdout.Len())
	return stdout.String(), nil
}

// isEmptyRepository recognises git's complaint about a branch without commits.
func isEmptyRepository(stderr string) bool {
	return strings.Contains(stderr, "does not have any commits yet")
}
