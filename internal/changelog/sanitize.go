package changelog

import (
	"regexp"
	"strings"
)

// mergePatterns are tried in order; each captures the branch name.
var mergePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Merge branch '(.+?)'.*`),
	regexp.MustCompile(`^Merge '(.+?)'.*`),
	regexp.MustCompile(`^Merged in (.+?/[A-Z]+-\d+).*`),
}

var issueKeyPattern = regexp.MustCompile(`[A-Z]+-\d+`)

// RewriteMergeSubject turns conventional merge messages into
// "Implement '<branch>'". Subjects matching no known phrasing are returned
// unchanged.
func RewriteMergeSubject(subject string) string {
	for _, p := range mergePatterns {
		if p.MatchString(subject) {
			return p.ReplaceAllString(subject, "Implement '$1'")
		}
	}
	return subject
}

// ExtractIssueKey returns the first issue key (e.g. "ABC-123") in subject,
// or "" when there is none.
func ExtractIssueKey(subject string) string {
	return issueKeyPattern.FindString(subject)
}

// EscapeSubject makes a commit subject safe to embed in Markdown and HTML.
// The replacements run in a fixed order so that later ones never undo
// earlier ones.
//
// Left brackets are only encoded when the subject has no right bracket at
// all, which keeps intentional Markdown links intact. With several bracket
// pairs this can under-escape.
func EscapeSubject(subject string) string {
	s := strings.ReplaceAll(subject, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	if strings.HasSuffix(s, `\`) {
		s += `\`
	}
	s = strings.ReplaceAll(s, "]]", `]\]`)
	if !strings.Contains(s, "]") {
		s = strings.ReplaceAll(s, "[", "&#91;")
	}
	return strings.ReplaceAll(s, "`", "\\`")
}
