package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/gitchangelog/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for gitchangelog",
		Example: `  # Show version info
  gitchangelog version

  # Plain output (for scripts)
  gitchangelog version --plain`,
		GroupID: GroupInfo,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := build.Current()
			if plain {
				printPlainVersion(cmd.OutOrStdout(), info)
				return
			}
			printPrettyVersion(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer, info build.Info) {
	fmt.Fprintf(w, "gitchangelog %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
}

// printPrettyVersion prints labelled, colored version output
func printPrettyVersion(w io.Writer, info build.Info) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := info.Version
	if info.Dev {
		version += " (development build)"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Version", version},
		{"Commit", info.ShortCommit()},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}

	fmt.Fprintln(w, cyan("gitchangelog"))
	for _, row := range rows {
		fmt.Fprintf(w, "  %s %s\n", dim(fmt.Sprintf("%-9s", row.label+":")), row.value)
	}
}
