package record

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	checkboxRe = regexp.MustCompile(`(?m)^-\s*\[([ xX])\]\s*(.*)$`)
	dayRe      = regexp.MustCompile(`(?i)\s*\(Day\s+(\d+)\)\s*$`)
	sectionRe  = regexp.MustCompile(`(?m)^## `)
)

// Fields extracts every `- **Label:** value` line into a key→value map.
// Keys are normalised with Key; values are trimmed. An empty or nil input
// yields an empty map, so callers can treat a missing file as a valid
// initial state.
func Fields(data []byte) map[string]string {
	out := make(map[string]string)
	for _, m := range fieldLineAllRe.FindAllSubmatch(data, -1) {
		out[Key(string(m[1]))] = strings.TrimSpace(string(m[2]))
	}
	return out
}

// Value returns the value of one labelled field and whether the field line
// exists. The label match is case-insensitive.
func Value(doc, label string) (string, bool) {
	m := fieldLineRe(label).FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// Int extracts a numeric field following the `Label:** 42` / `Label:** 42%`
// pattern. Missing or non-numeric fields yield 0, never an error, so
// downstream arithmetic stays safe.
func Int(doc, label string) int {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `:\*\*\s*(\d+)%?`)
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Checklist parses checkbox lines (`- [ ] text` / `- [x] text`). A trailing
// `(Day N)` annotation is stripped from the title and captured as Day.
func Checklist(text string) []ChecklistItem {
	var out []ChecklistItem
	for _, m := range checkboxRe.FindAllStringSubmatch(text, -1) {
		item := ChecklistItem{
			Achieved: m[1] == "x" || m[1] == "X",
			Title:    strings.TrimSpace(m[2]),
		}
		if dm := dayRe.FindStringSubmatch(item.Title); dm != nil {
			if n, err := strconv.Atoi(dm[1]); err == nil {
				d := n
				item.Day = &d
			}
			item.Title = strings.TrimSpace(dayRe.ReplaceAllString(item.Title, ""))
		}
		out = append(out, item)
	}
	return out
}

// Sections splits a record on `## ` headings. The first segment is the
// preamble (title line plus field lines) and is never treated as a section.
func Sections(doc string) (preamble string, sections []Section) {
	locs := sectionRe.FindAllStringIndex(doc, -1)
	if len(locs) == 0 {
		return doc, nil
	}
	preamble = doc[:locs[0][0]]
	for i, loc := range locs {
		end := len(doc)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := doc[loc[0]:end]
		nl := strings.IndexByte(block, '\n')
		if nl < 0 {
			sections = append(sections, Section{Header: strings.TrimSpace(block[3:])})
			continue
		}
		sections = append(sections, Section{
			Header: strings.TrimSpace(block[3:nl]),
			Body:   strings.Trim(block[nl+1:], "\n"),
		})
	}
	return preamble, sections
}
