// Package changelog turns raw commit-log text into a Markdown changelog.
//
// The transformation is a strict pipeline over one ordered slice of records:
//   - ParseLog splits the log text into records and extracts version tags
//   - Classify marks merge boundaries, rewrites merge subjects, finds issue
//     keys and escapes subjects for Markdown
//   - ResolveIndent nests commits brought in by a merge under it
//   - Group cuts the sequence into version sections
//   - RenderMarkdown writes the Markdown body
//
// Build composes all stages. RenderPage wraps the Markdown into the HTML
// changelog view and MarshalSections produces the structured console form.
// Nothing in this package performs I/O beyond the io.Writer handed to RenderMarkdown.
package changelog
