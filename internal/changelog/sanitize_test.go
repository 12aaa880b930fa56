package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSubject(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    string
	}{
		"plain text untouched":      {subject: "Add login form", want: "Add login form"},
		"ampersand":                 {subject: "Fix A & B", want: "Fix A &amp; B"},
		"less than":                 {subject: "Use <div>", want: "Use &lt;div>"},
		"double quote":              {subject: `Say "hi"`, want: "Say &quot;hi&quot;"},
		"trailing backslash":        {subject: `path\`, want: `path\\`},
		"inner backslash untouched": {subject: `a\b`, want: `a\b`},
		"double right bracket":      {subject: "see [[wiki]]", want: `see [[wiki]\]`},
		"lone left bracket":         {subject: "array[0 index", want: "array&#91;0 index"},
		"link left intact":          {subject: "see [docs](http://x)", want: "see [docs](http://x)"},
		"backtick":                  {subject: "call `run()`", want: "call \\`run()\\`"},
		"ampersand before entity":   {subject: "&lt;", want: "&amp;lt;"},
		"all together":              {subject: "A & <b> \"c\" `d` [e", want: "A &amp; &lt;b> &quot;c&quot; \\`d\\` &#91;e"},
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EscapeSubject(tt.subject))
		})
	}
}

func TestEscapeSubject_IdempotentWithoutTriggers(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Add feature", "Bump version to 1.2.3", "Refactor (parser) module", "ABC-123 done"} {
		once := EscapeSubject(s)
		assert.Equal(t, s, once)
		assert.Equal(t, once, EscapeSubject(once))
	}
}

func TestEscapeSubject_EscapesEveryTrigger(t *testing.T) {
	t.Parallel()

	got := EscapeSubject("a&b&c <x<y \"q\"\"r\" `t`t`")
	withoutEntities := strings.NewReplacer("&amp;", "", "&lt;", "", "&quot;", "").Replace(got)
	assert.NotContains(t, withoutEntities, "&")
	assert.NotContains(t, withoutEntities, "<")
	assert.NotContains(t, withoutEntities, `"`)
	assert.Equal(t, strings.Count(got, "`"), strings.Count(got, "\\`"))
}

func TestRewriteMergeSubject(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    string
	}{
		"merge branch":           {subject: "Merge branch 'feature/login' into develop", want: "Implement 'feature/login'"},
		"merge branch no into":   {subject: "Merge branch 'hotfix'", want: "Implement 'hotfix'"},
		"merge short form":       {subject: "Merge 'topic' from fork", want: "Implement 'topic'"},
		"bitbucket merged in":    {subject: "Merged in feature/ABC-42-new-ui (pull request #7)", want: "Implement 'feature/ABC-42'"},
		"pull request untouched": {subject: "Merge pull request #12 from o/r", want: "Merge pull request #12 from o/r"},
		"ordinary subject":       {subject: "Fix typo", want: "Fix typo"},
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RewriteMergeSubject(tt.subject))
		})
	}
}

func TestExtractIssueKey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    string
	}{
		"key in parentheses": {subject: "Fix login (ABC-123)", want: "ABC-123"},
		"no key":             {subject: "Fix login bug", want: ""},
		"first key wins":     {subject: "PROJ-1 and PROJ-2", want: "PROJ-1"},
		"lowercase ignored":  {subject: "abc-123 fix", want: ""},
		"key inside branch":  {subject: "Implement 'feature/WEB-77-x'", want: "WEB-77"},
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractIssueKey(tt.subject))
		})
	}
}
