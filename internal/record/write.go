package record

import (
	"strings"
	"time"
)

// New renders a fresh record: `# Title` header followed by the fields in
// the given order.
func New(title string, pairs ...Pair) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for _, p := range pairs {
		b.WriteString("- **" + p.Label + ":** " + p.Value + "\n")
	}
	return b.String()
}

// Update rewrites each field's existing `- **Label:** value` line in place,
// leaving every other line untouched. Fields without a matching line are
// NOT inserted. Call sites that need insertion use EnsureField, so the
// choice is explicit. Any `- **Last Modified:**` line present in the
// document is refreshed to the current date.
func Update(doc string, pairs ...Pair) string {
	for _, p := range pairs {
		doc = setField(doc, p.Label, p.Value)
	}
	if _, ok := Value(doc, "Last Modified"); ok {
		doc = setField(doc, "Last Modified", time.Now().Format("2006-01-02"))
	}
	return doc
}

// EnsureField updates the field line if present, otherwise inserts it at
// the end of the preamble (before the first `## ` section, or at the end
// of the document when there are no sections).
func EnsureField(doc, label, value string) string {
	if _, ok := Value(doc, label); ok {
		return setField(doc, label, value)
	}
	line := "- **" + label + ":** " + value + "\n"
	loc := sectionRe.FindStringIndex(doc)
	if loc == nil {
		if doc != "" && !strings.HasSuffix(doc, "\n") {
			doc += "\n"
		}
		return doc + line
	}
	return doc[:loc[0]] + line + doc[loc[0]:]
}

// setField replaces the value of one field line, preserving the label text
// exactly as it appears in the document. The replacement is assembled from
// submatches rather than an expansion template so values containing `$` or
// `**` cannot disturb the surrounding structure.
func setField(doc, label, value string) string {
	re := fieldLineRe(label)
	return re.ReplaceAllStringFunc(doc, func(line string) string {
		m := re.FindStringSubmatch(line)
		return "- **" + m[1] + ":** " + value
	})
}
