package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Banner is the first line of every rendered changelog.
const Banner = "## Changelog\n"

// RenderOptions controls bullet rendering.
type RenderOptions struct {
	// Link is the base URL for commit links, e.g. a repository homepage.
	Link string
	// Jira is the base URL for issue links.
	Jira string
	// Verbose renders indented entries with a two-space prefix instead of
	// omitting them.
	Verbose bool
}

// RenderMarkdown writes the changelog body for the grouped sections.
func RenderMarkdown(w io.Writer, sections []Section, opts RenderOptions) error {
	if _, err := io.WriteString(w, Banner); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}

	for _, s := range sections {
		if err := renderSection(w, s, opts); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Label, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(sections []Section, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(&b, sections, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderSection(w io.Writer, s Section, opts RenderOptions) error {
	if _, err := fmt.Fprintf(w, "\n### %s (%s)\n\n", s.Label, s.Date); err != nil {
		return err
	}

	for _, r := range s.Entries {
		if r.Indent && !opts.Verbose {
			continue
		}
		if _, err := io.WriteString(w, formatBullet(r, opts)); err != nil {
			return err
		}
	}

	return nil
}

// formatBullet formats one entry line including its trailing newline.
func formatBullet(r Record, opts RenderOptions) string {
	var b strings.Builder
	if r.Indent {
		b.WriteString("  ")
	}
	b.WriteString("- ")
	b.WriteString(r.Subject)

	if opts.Link != "" {
		fmt.Fprintf(&b, ` - [\[GIT\]](%s)`, CommitURL(opts.Link, r.Hash))
	}
	if r.IssueKey != "" && opts.Jira != "" {
		fmt.Fprintf(&b, ` - [\[JIRA\]](%s/%s)`, opts.Jira, r.IssueKey)
	}

	b.WriteString("\n")
	return b.String()
}

// CommitURL builds the link to a commit. Bitbucket serves commits under
// /commits/, everything else under /commit/.
func CommitURL(base, hash string) string {
	dir := "/commit/"
	if strings.Contains(base, "bitbucket") {
		dir = "/commits/"
	}
	return base + dir + hash
}

var headingPattern = regexp.MustCompile(`^### (.+) \((\d{4}-\d{2}-\d{2})\)$`)

// ParseHeadings recovers the version headings of a rendered changelog in
// document order.
func ParseHeadings(markdown string) []Heading {
	var headings []Heading
	for _, line := range strings.Split(markdown, "\n") {
		m := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		headings = append(headings, Heading{Label: m[1], Date: m[2]})
	}
	return headings
}
