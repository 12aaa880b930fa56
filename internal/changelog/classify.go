package changelog

// classifyState is carried left to right across the record sequence.
type classifyState struct {
	// prevParent is the first parent of the most recent merge commit.
	prevParent string
}

// step classifies one record against the state accumulated from the
// records before it and returns the next state.
func (s classifyState) step(r Record) (classifyState, Record) {
	r.MergeCommitStart = false
	r.MergeCommitEnd = false

	switch {
	case r.IsMerge():
		r.MergeCommitStart = true
		s.prevParent = r.FirstParent()
		r.Subject = RewriteMergeSubject(r.Subject)
	case s.prevParent != "" && r.Hash == s.prevParent:
		r.MergeCommitEnd = true
	}

	r.IssueKey = ExtractIssueKey(r.Subject)
	r.Subject = EscapeSubject(r.Subject)
	return s, r
}

// Classify marks merge starts and merge ends, rewrites merge subjects,
// extracts issue keys and escapes every subject. Records are updated in
// place and the same slice is returned.
func Classify(records []Record) []Record {
	var state classifyState
	for i := range records {
		state, records[i] = state.step(records[i])
	}
	return records
}
