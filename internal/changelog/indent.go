package changelog

// ResolveIndent flags the commits that a merge brought in so they render as
// sub-items. Indentation follows a merge start and carries forward until a
// tag, merge start or merge end resets it. Records must already be
// classified.
func ResolveIndent(records []Record) []Record {
	for i := range records {
		records[i].Indent = shouldIndent(records, i)
	}
	return records
}

func shouldIndent(records []Record, i int) bool {
	if i == 0 {
		return false
	}
	cur := records[i]
	if cur.Tagged() || cur.MergeCommitStart || cur.MergeCommitEnd {
		return false
	}
	prev := records[i-1]
	return prev.MergeCommitStart || prev.Indent
}
