// Package record implements the markdown record grammar used across the
// data tree: `- **Label:** value` field lines, `## Header` sections, and
// checkbox lists. The grammar is deliberately line-oriented: the writer
// only ever emits the exact patterns the parser recognises, so no general
// markdown AST is needed or wanted here.
package record

import (
	"regexp"
	"strings"
)

// Pair is a single field label/value to write into a record.
type Pair struct {
	Label string
	Value string
}

// ChecklistItem is one parsed checkbox line. Day is nil when the line
// carries no `(Day N)` annotation.
type ChecklistItem struct {
	Title    string `json:"title"`
	Day      *int   `json:"day"`
	Achieved bool   `json:"achieved"`
}

// Section is a `## Header` block within a record.
type Section struct {
	Header string
	Body   string
}

var fieldLineAllRe = regexp.MustCompile(`(?m)^-\s*\*\*([^:\n]+?):\*\*\s*(.*)$`)

// Key normalises a field label into a map key: lowercased, whitespace
// replaced with underscores.
func Key(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// fieldLineRe returns the line regex for one specific label,
// case-insensitive on the label itself.
func fieldLineRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^-\s*\*\*(` + regexp.QuoteMeta(label) + `):\*\*\s*(.*)$`)
}
