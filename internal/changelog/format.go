package changelog

import (
	"encoding/json"
	"fmt"
)

// document is the structured console form of a changelog.
type document struct {
	Sections []Section `json:"sections"`
}

// MarshalSections serializes the grouped sections as indented JSON.
// Sections without entries still appear so headings round-trip.
func MarshalSections(sections []Section) ([]byte, error) {
	doc := document{Sections: make([]Section, len(sections))}
	for i, s := range sections {
		if s.Entries == nil {
			s.Entries = []Record{}
		}
		doc.Sections[i] = s
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sections: %w", err)
	}
	return append(data, '\n'), nil
}
