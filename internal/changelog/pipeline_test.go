package changelog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleLog is a history with one merged feature branch and two releases,
// in the order the history query emits it.
func sampleLog() string {
	return strings.Join([]string{
		logLine("2024-03-04", " (HEAD -> main)", "m1", "Merge branch 'feature/WEB-7' into main", "b2 s2"),
		logLine("2024-03-03", " (feature/WEB-7)", "s2", "Polish <widget>", "s1"),
		logLine("2024-03-02", "", "s1", "Add widget", "b2"),
		logLine("2024-03-01", "", "b2", "Fix crash & burn", "t1"),
		logLine("2024-02-10", " (tag: v1.1.0)", "t1", "Release 1.1.0", "b1"),
		logLine("2024-02-01", "", "b1", "Tweak docs [draft", "t0"),
		logLine("2024-01-01", " (tag: v1.0.0)", "t0", "Initial release", ""),
	}, "\n") + "\n"
}

func TestBuild(t *testing.T) {
	t.Parallel()

	res, err := Build(sampleLog(), BuildOptions{
		DeclaredVersion: "1.2.0",
		LatestTagRefs:   " (tag: v1.1.0)",
		Now:             fixedClock,
		Render:          RenderOptions{Link: "https://bitbucket.org/o/r"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Records, 7)

	want := "## Changelog\n" +
		"\n### 1.2.0 (latest) (2024-03-05)\n\n" +
		"- Implement 'feature/WEB-7' - [\\[GIT\\]](https://bitbucket.org/o/r/commits/m1)\n" +
		"- Fix crash &amp; burn - [\\[GIT\\]](https://bitbucket.org/o/r/commits/b2)\n" +
		"\n### 1.1.0 (2024-02-10)\n\n" +
		"- Release 1.1.0 - [\\[GIT\\]](https://bitbucket.org/o/r/commits/t1)\n" +
		"- Tweak docs &#91;draft - [\\[GIT\\]](https://bitbucket.org/o/r/commits/b1)\n" +
		"\n### 1.0.0 (2024-01-01)\n\n" +
		"- Initial release - [\\[GIT\\]](https://bitbucket.org/o/r/commits/t0)\n"
	assert.Equal(t, want, res.Markdown)
}

func TestBuild_VerboseNestsMergedCommits(t *testing.T) {
	t.Parallel()

	res, err := Build(sampleLog(), BuildOptions{DeclaredVersion: "1.2.0", LatestTagRefs: " (tag: v1.1.0)", Now: fixedClock, Render: RenderOptions{Verbose: true}})
	require.NoError(t, err)

	assert.Contains(t, res.Markdown, "- Implement 'feature/WEB-7'\n  - Polish &lt;widget>\n  - Add widget\n- Fix crash &amp; burn\n")
}

func TestBuild_DeclaredBehindLatestTag(t *testing.T) {
	t.Parallel()

	res, err := Build(sampleLog(), BuildOptions{DeclaredVersion: "1.0.0", LatestTagRefs: " (tag: v1.1.0)", Now: fixedClock})
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "falls before your latest tag (1.1.0)")
	assert.Contains(t, res.Markdown, "\n### 1.0.0 (2024-03-05)\n")
}

func TestBuild_HeadingsRoundTrip(t *testing.T) {
	t.Parallel()

	res, err := Build(sampleLog(), BuildOptions{DeclaredVersion: "1.2.0", LatestTagRefs: " (tag: v1.1.0)", Now: fixedClock})
	require.NoError(t, err)

	var tagged []Heading
	for _, r := range res.Records {
		if r.Tagged() {
			tagged = append(tagged, Heading{Label: r.Tag, Date: r.Date})
		}
	}

	headings := ParseHeadings(res.Markdown)
	require.NotEmpty(t, headings)
	assert.Equal(t, Heading{Label: "1.2.0 (latest)", Date: "2024-03-05"}, headings[0])
	assert.Equal(t, tagged, headings[1:])
}

func TestBuild_LatestOnly(t *testing.T) {
	t.Parallel()

	records, err := ParseLog(sampleLog())
	require.NoError(t, err)

	res, err := Build(strings.Join(strings.Split(sampleLog(), "\n")[4:], "\n"), BuildOptions{
		DeclaredVersion: "1.1.0",
		LatestTagRefs:   " (tag: v1.1.0)",
		LatestOnly:      true,
		Now:             fixedClock,
	})
	require.NoError(t, err)

	require.Len(t, res.Sections, 1)
	assert.Equal(t, []string{records[4].Hash, records[5].Hash}, hashes(res.Sections[0].Entries))
	assert.NotContains(t, res.Markdown, "1.0.0")
}

func TestBuild_EmptyHistory(t *testing.T) {
	t.Parallel()

	res, err := Build("", BuildOptions{DeclaredVersion: "0.1.0", Now: fixedClock})
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Sections)
	assert.Equal(t, Banner, res.Markdown)
}

func TestBuild_MalformedLog(t *testing.T) {
	t.Parallel()

	_, err := Build("garbage without separators", BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing history")
}

func TestMarshalSections(t *testing.T) {
	t.Parallel()

	res, err := Build(sampleLog(), BuildOptions{DeclaredVersion: "1.2.0", LatestTagRefs: " (tag: v1.1.0)", Now: fixedClock})
	require.NoError(t, err)

	data, err := MarshalSections(res.Sections)
	require.NoError(t, err)

	var doc struct {
		Sections []struct {
			Label   string `json:"label"`
			Tag     string `json:"tag"`
			Date    string `json:"date"`
			Entries []struct {
				Hash    string `json:"hash"`
				Subject string `json:"subject"`
				Jira    string `json:"jira"`
				Indent  bool   `json:"indent"`
			} `json:"entries"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "1.2.0 (latest)", doc.Sections[0].Label)
	assert.Equal(t, "WEB-7", doc.Sections[0].Entries[0].Jira)
	assert.True(t, doc.Sections[0].Entries[1].Indent)
	assert.Equal(t, "1.1.0", doc.Sections[1].Tag)
}

func TestMarshalSections_EmptyEntriesEncodedAsArray(t *testing.T) {
	t.Parallel()

	data, err := MarshalSections([]Section{{Label: "Latest", Date: "2024-01-01"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries": []`)
}
