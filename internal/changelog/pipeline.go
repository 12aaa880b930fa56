package changelog

import (
	"fmt"
	"time"
)

// BuildOptions bundles everything the pipeline needs besides the log text.
type BuildOptions struct {
	DeclaredVersion string
	// LatestTagRefs is the raw decoration of the most recently tagged commit.
	LatestTagRefs string
	LatestOnly    bool
	Render        RenderOptions
	Now           func() time.Time
}

// Result is the outcome of one pipeline run.
type Result struct {
	Records  []Record
	Sections []Section
	Markdown string
	// Warnings are non-fatal problems the caller should report.
	Warnings []string
}

// Build runs the whole transformation over raw history output:
// parse, classify, indent, group and render.
func Build(raw string, opts BuildOptions) (*Result, error) {
	records, err := ParseLog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}

	records = ResolveIndent(Classify(records))

	sections, warnings := Group(records, GroupOptions{
		DeclaredVersion: opts.DeclaredVersion,
		LatestTag:       ExtractTag(opts.LatestTagRefs),
		LatestOnly:      opts.LatestOnly,
		Now:             opts.Now,
	})

	md, err := RenderMarkdownString(sections, opts.Render)
	if err != nil {
		return nil, fmt.Errorf("rendering changelog: %w", err)
	}

	return &Result{
		Records:  records,
		Sections: sections,
		Markdown: md,
		Warnings: warnings,
	}, nil
}
