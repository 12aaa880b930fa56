// Package cli implements the gitchangelog command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	clierrors "github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/git"
	"github.com/spf13/cobra"
)

// GroupInfo groups the informational subcommands in help output.
const GroupInfo = "info"

// flagKeys maps each changelog flag to its configuration key.
var flagKeys = map[string]string{
	"file":             "file",
	"page":             "page",
	"link":             "link",
	"jira":             "jira",
	"verbose":          "verbose",
	"latestonly":       "latestonly",
	"output":           "output",
	"json":             "json",
	"dir":              "dir",
	"short-hash":       "shorthash",
	"version-override": "version",
	"debug":            "debug",
}

var rootCmd = newRootCmd(defaultRunner())

// newRootCmd builds the root command around r.
func newRootCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitchangelog",
		Short: "Generate a changelog from git history",
		Long: `gitchangelog turns the commit history of a git repository into a Markdown
changelog grouped by release tag, with an optional HTML page.

Options are read, lowest precedence first, from built-in defaults, the
"changelog" section of package.json (or composer.json), .changelogrc,
.env, GITCHANGELOG_* environment variables and finally flags.

Source: https://github.com/ariel-frischer/gitchangelog`,
		Example: `  # Write ./CHANGELOG.md
  gitchangelog

  # Print the changelog instead of writing a file
  gitchangelog --file stdout

  # Write Markdown and an HTML page, linking commits and issues
  gitchangelog --page ./changelog.html --link https://github.com/o/r --jira https://jira.example.com/browse

  # Only the newest release, as JSON
  gitchangelog --latestonly --output --json --file false`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return r.execute(cmd.Context(), dir, changedFlags(cmd))
		},
	}

	cmd.AddGroup(&cobra.Group{ID: GroupInfo, Title: "Information:"})

	f := cmd.Flags()
	f.String("file", "./CHANGELOG.md", `Markdown output path ("stdout" or "false" prints instead)`)
	f.String("page", "", "HTML page output path (written alongside the Markdown file)")
	f.String("link", "", "Base URL for commit links (defaults to the manifest homepage or origin remote)")
	f.String("jira", "", "Base URL for issue links, e.g. https://jira.example.com/browse")
	f.BoolP("verbose", "v", false, "Include commits nested under merges")
	f.Bool("latestonly", false, "Only render the newest section")
	f.BoolP("output", "o", false, "Also print the changelog to stdout")
	f.Bool("json", false, "Print the sections as JSON instead of Markdown")
	f.StringP("dir", "C", ".", "Directory of the repository to read")
	f.Bool("short-hash", false, "Use abbreviated commit hashes")
	f.String("version-override", "", "Declared version, instead of the manifest version")
	f.Bool("debug", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// changedFlags returns the flags set on the command line, keyed by config key.
func changedFlags(cmd *cobra.Command) map[string]any {
	values := make(map[string]any)
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		switch flag.Value.Type() {
		case "bool":
			v, _ := cmd.Flags().GetBool(name)
			values[key] = v
		default:
			values[key] = flag.Value.String()
		}
	}
	return values
}

// setupLogging installs the process logger. Debug also enables git
// command tracing.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if debug {
		git.SetDebugLogger(func(format string, args ...any) {
			slog.Debug(fmt.Sprintf(format, args...))
		})
	} else {
		git.SetDebugLogger(nil)
	}
}

// Execute runs the root command and prints failures with the error banner.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		cliErr := clierrors.AsCLIError(err)
		if cliErr == nil {
			cliErr = clierrors.Wrap(err, clierrors.Runtime)
		}
		clierrors.FprintFailure(rootCmd.ErrOrStderr(), cliErr)
	}
	return err
}
