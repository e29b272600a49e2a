package record

import (
	"fmt"
	"sort"
	"strings"
)

// ReplaceSection replaces the body of the named `## Header` block, which
// runs until the next `## ` heading or a terminal `---` line. All
// surrounding sections are preserved byte-identical. When the header does
// not exist the document is returned unchanged; use EnsureSection first
// when the section must exist.
//
// Rendering depends on the value shape: []string → one `- item` line per
// element, map[string]string → `- key: value` lines (sorted), and
// []ChecklistItem → checkbox lines; anything else is rendered verbatim
// via fmt.
func ReplaceSection(doc, header string, value any) string {
	start, end, ok := sectionBounds(doc, header)
	if !ok {
		return doc
	}
	return doc[:start] + renderValue(value) + "\n" + doc[end:]
}

// EnsureSection appends an empty `## Header` block when the document does
// not already contain one.
func EnsureSection(doc, header string) string {
	if _, _, ok := sectionBounds(doc, header); ok {
		return doc
	}
	if doc != "" && !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	return doc + "\n## " + header + "\n"
}

// RenderChecklist renders checkbox lines, re-attaching `(Day N)` suffixes.
func RenderChecklist(items []ChecklistItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		box := "[ ]"
		if it.Achieved {
			box = "[x]"
		}
		line := "- " + box + " " + it.Title
		if it.Day != nil {
			line += fmt.Sprintf(" (Day %d)", *it.Day)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// sectionBounds locates the body of a `## Header` section: start is the
// offset just past the heading line, end is the start of the next `## `
// heading or terminal `---` line (or the end of the document).
func sectionBounds(doc, header string) (start, end int, ok bool) {
	lines := strings.SplitAfter(doc, "\n")
	offset := 0
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\n")
		if strings.EqualFold(trimmed, "## "+header) {
			start = offset + len(line)
			end = len(doc)
			rest := start
			for _, next := range lines[i+1:] {
				nt := strings.TrimRight(next, "\n")
				if strings.HasPrefix(nt, "## ") || strings.TrimSpace(nt) == "---" {
					end = rest
					break
				}
				rest += len(next)
			}
			return start, end, true
		}
		offset += len(line)
	}
	return 0, 0, false
}

func renderValue(value any) string {
	switch v := value.(type) {
	case []string:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, "- "+item)
		}
		return strings.Join(lines, "\n")
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, "- "+k+": "+v[k])
		}
		return strings.Join(lines, "\n")
	case []ChecklistItem:
		return RenderChecklist(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
