package changelog

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// UntaggedVersion is the version assumed when history carries no tag.
const UntaggedVersion = "0.0.0"

// DateLayout is the layout of commit dates and of the head section date.
const DateLayout = "2006-01-02"

// GroupOptions controls how records are cut into version sections.
type GroupOptions struct {
	// DeclaredVersion is the project's own version, e.g. from package.json.
	DeclaredVersion string
	// LatestTag is the most recent version tag anywhere in history.
	LatestTag string
	// LatestOnly keeps only the newest section.
	LatestOnly bool
	// Now returns the wall clock; defaults to time.Now.
	Now func() time.Time
}

// Today formats t as the head section date (YYYY-MM-DD, zero padded).
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// CompareVersions orders two semantic versions, treating "" as 0.0.0.
// It returns -1, 0 or 1.
func CompareVersions(a, b string) (int, error) {
	va, err := parseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := parseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

func parseVersion(v string) (*semver.Version, error) {
	if v == "" {
		v = UntaggedVersion
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", v, err)
	}
	return parsed, nil
}

// groupState is carried left to right while cutting sections.
type groupState struct {
	// latest stays true from the first record until another tag shows up.
	latest bool
}

// Group cuts classified records into version sections.
//
// When the first record is untagged a head section dated today is opened:
// it is labelled "<declared> (latest)" when the declared version is at or
// ahead of the latest tag, and with the bare declared version otherwise.
// Every tagged record opens a section labelled with its tag and commit date.
// In latest-only mode the records after the first tag following record 0
// are dropped.
//
// The returned warnings are non-fatal version ordering problems.
func Group(records []Record, opts GroupOptions) ([]Section, []string) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var warnings []string
	sections := make([]Section, 0)
	if len(records) == 0 {
		return sections, warnings
	}

	current, warn := declaredIsCurrent(opts.DeclaredVersion, opts.LatestTag)
	if warn != "" {
		warnings = append(warnings, warn)
	}

	if !records[0].Tagged() {
		sections = append(sections, Section{
			Label: headLabel(opts.DeclaredVersion, current),
			Date:  Today(now()),
		})
	}

	state := groupState{latest: true}
	for i, r := range records {
		if i > 0 && r.Tagged() {
			state.latest = false
		}
		if opts.LatestOnly && !state.latest {
			break
		}
		if r.Tagged() {
			sections = append(sections, Section{Label: r.Tag, Tag: r.Tag, Date: r.Date})
		}
		last := &sections[len(sections)-1]
		last.Entries = append(last.Entries, r)
	}

	return sections, warnings
}

// declaredIsCurrent reports whether the declared version is at or ahead of
// the latest tag, with a warning when it is behind or cannot be parsed.
// An unparsable declared version is ordered as 0.0.0.
func declaredIsCurrent(declared, latestTag string) (bool, string) {
	if declared == "" {
		return true, ""
	}

	var warning string
	dv, err := parseVersion(declared)
	if err != nil {
		warning = fmt.Sprintf("Your package version (%s) is not a SemVer value and is treated as %s.", declared, UntaggedVersion)
		dv, _ = parseVersion(UntaggedVersion)
	}

	lv, err := parseVersion(latestTag)
	if err != nil {
		return true, fmt.Sprintf("Cannot compare your package version (%s) with your latest tag (%s): %v", declared, latestTag, err)
	}

	if dv.Compare(lv) < 0 {
		if warning == "" {
			warning = fmt.Sprintf("Your package version (%s) has a SemVer value that falls before your latest tag (%s).", declared, lv.Original())
		}
		return false, warning
	}
	return true, warning
}

// headLabel labels the synthetic section for unreleased work.
func headLabel(declared string, current bool) string {
	switch {
	case declared == "":
		return "Latest"
	case current:
		return declared + " (latest)"
	default:
		return declared
	}
}
