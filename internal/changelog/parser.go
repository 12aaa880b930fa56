package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldSeparator delimits the five fields of one log record.
// The history query emits it with the %x1f placeholder.
const FieldSeparator = "\x1f"

// fieldCount is the number of positional fields per record:
// date, ref names, hash, subject, parents.
const fieldCount = 5

var tagPattern = regexp.MustCompile(`tag: v?(\d+\.\d+\.\d+[^,)]*)`)

// ParseError describes a log line that could not be split into a record.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: malformed log record %q", e.Line, e.Text)
}

// ParseLog splits raw history output into records, preserving order.
// Empty or whitespace-only output means the repository has no commits and
// yields an empty slice. Missing trailing fields are left empty; a line
// without any field separator is rejected.
func ParseLog(raw string) ([]Record, error) {
	raw = strings.TrimRight(raw, " \t\r\n")
	records := make([]Record, 0)
	if raw == "" {
		return records, nil
	}

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line}
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRecord(line string) (Record, error) {
	if !strings.Contains(line, FieldSeparator) {
		return Record{}, fmt.Errorf("no field separator")
	}

	var fields [fieldCount]string
	copy(fields[:], strings.SplitN(line, FieldSeparator, fieldCount))

	return Record{
		Date:     fields[0],
		RefNames: fields[1],
		Hash:     fields[2],
		Subject:  fields[3],
		Parents:  fields[4],
		Tag:      ExtractTag(fields[1]),
	}, nil
}

// ExtractTag returns the first semantic-version tag in ref decoration text
// such as " (HEAD -> main, tag: v1.2.0, origin/main)". A leading "v" is
// dropped. It returns "" when no version tag is present.
func ExtractTag(refNames string) string {
	if !strings.Contains(refNames, "tag:") {
		return ""
	}
	m := tagPattern.FindStringSubmatch(refNames)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
