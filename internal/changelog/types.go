package changelog

import "strings"

// Record is one commit as it flows through the pipeline.
// ParseLog fills the raw fields and Tag; later stages fill the rest in place.
type Record struct {
	Date     string `json:"date"`
	RefNames string `json:"-"`
	Hash     string `json:"hash"`
	Subject  string `json:"subject"`
	Parents  string `json:"-"`

	// Tag is the version extracted from RefNames, empty when untagged.
	Tag string `json:"tag,omitempty"`
	// MergeCommitStart is set for commits with more than one parent.
	MergeCommitStart bool `json:"mergeCommitStart"`
	// MergeCommitEnd is set for the commit where the last merged branch rejoins.
	MergeCommitEnd bool `json:"mergeCommitEnd"`
	// IssueKey is the first issue-tracker key found in the subject.
	IssueKey string `json:"jira,omitempty"`
	// Indent marks entries rendered as sub-items of a merge.
	Indent bool `json:"indent"`
}

// Tagged reports whether a version tag is attached to the record.
func (r Record) Tagged() bool {
	return r.Tag != ""
}

// IsMerge reports whether the parents field lists more than one parent.
func (r Record) IsMerge() bool {
	return strings.Contains(strings.TrimSpace(r.Parents), " ")
}

// FirstParent returns the first parent identifier, or "" for root commits.
func (r Record) FirstParent() string {
	fields := strings.Fields(r.Parents)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Section is a version heading together with the records rendered under it.
type Section struct {
	// Label is the heading text before the date, e.g. "1.2.0" or "1.3.0 (latest)".
	Label string `json:"label"`
	// Tag is the version tag for tagged sections, empty for the synthetic head.
	Tag     string   `json:"tag,omitempty"`
	Date    string   `json:"date"`
	Entries []Record `json:"entries"`
}

// Heading is a version heading recovered from rendered Markdown.
type Heading struct {
	Label string
	Date  string
}
