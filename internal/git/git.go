// Package git is the history collaborator of the changelog pipeline. It uses
// the go-git library to locate the repository and read its remotes, and runs
// the git CLI for the two history queries go-git cannot express (topological,
// merge-simplified log ordering and ref decorations).
package git

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrNotRepository is returned when no repository contains the directory.
var ErrNotRepository = errors.New("not a git repository")

// openRepo opens the repository containing path, walking up the directory
// tree like the git CLI does. An empty path means the working directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// RepositoryRoot returns the top-level working directory of the repository
// containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// OriginURL returns the web URL of the "origin" remote, suitable as a base
// for commit links. It returns "" when there is no origin remote.
func OriginURL(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote("origin")
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}

	web := WebURL(urls[0])
	logDebug("[git] OriginURL: %s -> %s", urls[0], web)
	return web, nil
}

// WebURL converts a clone URL into the repository's browser URL:
//
//	git@github.com:owner/repo.git      -> https://github.com/owner/repo
//	ssh://git@host:22/owner/repo.git   -> https://host/owner/repo
//	https://user@host/owner/repo.git   -> https://host/owner/repo
//
// Local paths, other protocols and unparsable URLs yield "".
func WebURL(cloneURL string) string {
	ep, err := transport.NewEndpoint(strings.TrimSpace(cloneURL))
	if err != nil {
		logDebug("[git] WebURL: cannot parse %q: %v", cloneURL, err)
		return ""
	}

	switch ep.Protocol {
	case "https", "http", "ssh", "git":
	default:
		return ""
	}

	path := strings.Trim(ep.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	if ep.Host == "" || strings.ContainsAny(ep.Host, `/\`) || path == "" || strings.Contains(path, "@") {
		return ""
	}
	return "https://" + ep.Host + "/" + path
}
