package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/gitchangelog/internal/changelog"
	"github.com/ariel-frischer/gitchangelog/internal/config"
	clierrors "github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/git"
	"github.com/ariel-frischer/gitchangelog/internal/progress"
)

// runner holds the collaborators of one changelog run.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	// newCollector returns the history source for a repository root.
	newCollector func(root string, shortHash bool) git.Collector
	now          func() time.Time
	caps         progress.TerminalCapabilities
}

func defaultRunner() *runner {
	return &runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newCollector: func(root string, shortHash bool) git.Collector {
			return git.NewCLICollector(root, shortHash)
		},
		now:  time.Now,
		caps: progress.DetectTerminalCapabilities(os.Stderr),
	}
}

// execute loads the layered configuration for dir and runs the pipeline.
func (r *runner) execute(ctx context.Context, dir string, flags map[string]any) error {
	debug, _ := flags["debug"].(bool)
	setupLogging(debug)

	opts, err := config.Load(dir, flags)
	if err != nil {
		return clierrors.InvalidConfig(err)
	}
	if opts.Debug && !debug {
		setupLogging(true)
	}
	slog.Debug("resolved options", "options", fmt.Sprintf("%+v", *opts))

	return r.run(ctx, opts)
}

// run collects history, builds the changelog and writes every enabled sink:
// console echo, then the Markdown file, then the HTML page.
func (r *runner) run(ctx context.Context, opts *config.Options) error {
	root, err := git.RepositoryRoot(opts.Dir)
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return clierrors.GitNotRepository(opts.Dir)
		}
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	link := opts.Link
	if link == "" {
		link = originLink(root)
	}

	collector := r.newCollector(root, opts.ShortHash)

	step := progress.Start(r.stderr, r.caps, "Reading commit history")
	raw, err := collector.Log(ctx)
	step.Done(err)
	if err != nil {
		return clierrors.HistoryQueryFailed(err)
	}

	step = progress.Start(r.stderr, r.caps, "Reading latest tag")
	tagRefs, err := collector.LatestTag(ctx)
	step.Done(err)
	if err != nil {
		return clierrors.TagQueryFailed(err)
	}

	res, err := changelog.Build(raw, changelog.BuildOptions{
		DeclaredVersion: opts.Version,
		LatestTagRefs:   tagRefs,
		LatestOnly:      opts.LatestOnly,
		Now:             r.now,
		Render: changelog.RenderOptions{
			Link:    link,
			Jira:    opts.Jira,
			Verbose: opts.Verbose,
		},
	})
	if err != nil {
		return clierrors.MalformedHistory(err)
	}
	for _, w := range res.Warnings {
		slog.Warn(w)
	}
	slog.Debug("built changelog", "records", len(res.Records), "sections", len(res.Sections))

	if opts.EchoesConsole() {
		if err := r.echo(opts, res); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
	}

	if opts.WritesFile() {
		path := resolvePath(opts.Dir, opts.File)
		if err := writeFile(path, []byte(res.Markdown)); err != nil {
			return clierrors.FileNotWritable(path, err)
		}
		slog.Info("wrote changelog", "path", path)
	}

	if opts.WritesPage() {
		page, err := changelog.RenderPage([]byte(res.Markdown))
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		path := resolvePath(opts.Dir, opts.Page)
		if err := writeFile(path, page); err != nil {
			return clierrors.FileNotWritable(path, err)
		}
		slog.Info("wrote changelog page", "path", path)
	}

	return nil
}

// echo prints the changelog, or its sections as JSON, to stdout.
func (r *runner) echo(opts *config.Options, res *changelog.Result) error {
	if opts.JSON {
		data, err := changelog.MarshalSections(res.Sections)
		if err != nil {
			return err
		}
		_, err = r.stdout.Write(data)
		return err
	}
	_, err := io.WriteString(r.stdout, res.Markdown)
	return err
}

// originLink derives the commit link base from the origin remote, or "".
func originLink(root string) string {
	origin, err := git.OriginURL(root)
	if err != nil {
		slog.Debug("could not read origin remote", "error", err)
		return ""
	}
	return git.WebURL(origin)
}

// resolvePath interprets relative output paths against dir.
func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
