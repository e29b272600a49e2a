package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const challengeDoc = `# 30-Day Running Challenge

- **ID:** ch-1
- **Status:** active
- **Progress:** 40%
- **Current Streak:** 5
- **Last Modified:** 2024-01-01

## Milestones

- [x] Week 1 Complete (Day 7)
- [ ] Week 2

## Notes

Keep going.
---
footer text
`

func TestFields(t *testing.T) {
	got := Fields([]byte(challengeDoc))
	assert.Equal(t, "ch-1", got["id"])
	assert.Equal(t, "active", got["status"])
	assert.Equal(t, "40%", got["progress"])
	assert.Equal(t, "5", got["current_streak"])
}

func TestFields_EmptyInput(t *testing.T) {
	assert.Empty(t, Fields(nil))
	assert.Empty(t, Fields([]byte("")))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "current_streak", Key("Current Streak"))
	assert.Equal(t, "last_modified", Key("  Last   Modified "))
}

func TestValue_CaseInsensitiveLabel(t *testing.T) {
	v, ok := Value(challengeDoc, "status")
	require.True(t, ok)
	assert.Equal(t, "active", v)

	_, ok = Value(challengeDoc, "Nonexistent")
	assert.False(t, ok)
}

func TestInt(t *testing.T) {
	assert.Equal(t, 40, Int(challengeDoc, "Progress"))
	assert.Equal(t, 5, Int(challengeDoc, "Current Streak"))
	assert.Equal(t, 0, Int(challengeDoc, "Best Streak"), "missing numeric fields default to 0")
}

func TestChecklist(t *testing.T) {
	items := Checklist("- [x] Week 1 Complete (Day 7)\n- [ ] Week 2\n")
	require.Len(t, items, 2)

	assert.Equal(t, "Week 1 Complete", items[0].Title)
	require.NotNil(t, items[0].Day)
	assert.Equal(t, 7, *items[0].Day)
	assert.True(t, items[0].Achieved)

	assert.Equal(t, "Week 2", items[1].Title)
	assert.Nil(t, items[1].Day)
	assert.False(t, items[1].Achieved)
}

func TestChecklist_RoundTrip(t *testing.T) {
	in := "- [x] Week 1 Complete (Day 7)\n- [ ] Week 2"
	assert.Equal(t, in, RenderChecklist(Checklist(in)))
}

func TestSections_PreambleIsNotASection(t *testing.T) {
	preamble, sections := Sections(challengeDoc)
	assert.Contains(t, preamble, "# 30-Day Running Challenge")
	require.Len(t, sections, 2)
	assert.Equal(t, "Milestones", sections[0].Header)
	assert.Contains(t, sections[0].Body, "Week 1 Complete")
	assert.Equal(t, "Notes", sections[1].Header)
}

func TestNew(t *testing.T) {
	doc := New("Profile", Pair{"Name", "Ada"}, Pair{"Email", "ada@example.com"})
	assert.True(t, strings.HasPrefix(doc, "# Profile\n"))
	assert.Equal(t, "Ada", Fields([]byte(doc))["name"])
	assert.Equal(t, "ada@example.com", Fields([]byte(doc))["email"])
}

func TestUpdate_UntouchedFieldsRoundTrip(t *testing.T) {
	out := Update(challengeDoc, Pair{"Status", "paused"})

	fields := Fields([]byte(out))
	assert.Equal(t, "paused", fields["status"])
	// Everything not written must survive byte-for-byte semantics.
	assert.Equal(t, "ch-1", fields["id"])
	assert.Equal(t, "40%", fields["progress"])
	assert.Contains(t, out, "- [x] Week 1 Complete (Day 7)")
	assert.Contains(t, out, "footer text")
}

func TestUpdate_ValueWithRegexReservedSequences(t *testing.T) {
	out := Update(challengeDoc, Pair{"Status", "very **bold** $1 status"})

	v, ok := Value(out, "Status")
	require.True(t, ok)
	assert.Equal(t, "very **bold** $1 status", v)
	// Neighbouring lines must not be corrupted.
	assert.Equal(t, "ch-1", Fields([]byte(out))["id"])
	assert.Equal(t, 40, Int(out, "Progress"))
}

func TestUpdate_DoesNotInsertMissingFields(t *testing.T) {
	out := Update(challengeDoc, Pair{"Brand New", "x"})
	_, ok := Value(out, "Brand New")
	assert.False(t, ok)
}

func TestUpdate_RefreshesLastModified(t *testing.T) {
	out := Update(challengeDoc, Pair{"Status", "completed"})
	v, ok := Value(out, "Last Modified")
	require.True(t, ok)
	assert.Equal(t, time.Now().Format("2006-01-02"), v)
}

func TestEnsureField_InsertsBeforeFirstSection(t *testing.T) {
	out := EnsureField(challengeDoc, "Best Streak", "9")
	v, ok := Value(out, "Best Streak")
	require.True(t, ok)
	assert.Equal(t, "9", v)
	require.Less(t, strings.Index(out, "Best Streak"), strings.Index(out, "## Milestones"))

	// Updating an existing field does not duplicate the line.
	out = EnsureField(out, "Best Streak", "10")
	assert.Equal(t, 1, strings.Count(out, "Best Streak"))
}

func TestReplaceSection(t *testing.T) {
	out := ReplaceSection(challengeDoc, "Milestones", []ChecklistItem{
		{Title: "Week 1 Complete", Day: intp(7), Achieved: true},
		{Title: "Week 2", Day: intp(14), Achieved: true},
	})
	assert.Contains(t, out, "- [x] Week 2 (Day 14)")
	// Sibling sections stay intact.
	assert.Contains(t, out, "## Notes")
	assert.Contains(t, out, "Keep going.")
	assert.Contains(t, out, "# 30-Day Running Challenge")
}

func TestReplaceSection_TerminalMarker(t *testing.T) {
	out := ReplaceSection(challengeDoc, "Notes", "Replaced body.")
	assert.Contains(t, out, "Replaced body.")
	assert.NotContains(t, out, "Keep going.")
	// The --- marker and what follows it are untouched.
	assert.Contains(t, out, "---\nfooter text")
}

func TestReplaceSection_MissingHeaderIsNoOp(t *testing.T) {
	out := ReplaceSection(challengeDoc, "Ghost", "body")
	assert.Equal(t, challengeDoc, out)
}

func TestReplaceSection_ListAndMapRendering(t *testing.T) {
	doc := "# Agent\n\n## Skills\n\n- old\n\n## Capabilities\n\n- old: yes\n"

	out := ReplaceSection(doc, "Skills", []string{"running", "journaling"})
	assert.Contains(t, out, "- running\n- journaling")

	out = ReplaceSection(out, "Capabilities", map[string]string{"chat": "true", "vision": "false"})
	assert.Contains(t, out, "- chat: true\n- vision: false")
}

func TestEnsureSection(t *testing.T) {
	doc := "# Agent\n\n- **Name:** Coach\n"
	out := EnsureSection(doc, "Skills")
	assert.Contains(t, out, "## Skills")

	// Idempotent.
	assert.Equal(t, out, EnsureSection(out, "Skills"))
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body := SplitFrontmatter([]byte("---\nname: deep-work\ncategory: focus\n---\n# Deep Work\n"))
	require.NotNil(t, fm)
	assert.Equal(t, "deep-work", fm["name"])
	assert.Equal(t, "# Deep Work\n", body)
}

func TestSplitFrontmatter_InvalidYAMLFallsBackToBody(t *testing.T) {
	in := []byte("---\n: broken: {{{\n---\nBody\n")
	fm, body := SplitFrontmatter(in)
	assert.Nil(t, fm)
	assert.Equal(t, string(in), body)
}

func TestSplitFrontmatter_NoFrontmatter(t *testing.T) {
	fm, body := SplitFrontmatter([]byte("# Plain\n"))
	assert.Nil(t, fm)
	assert.Equal(t, "# Plain\n", body)
}

func intp(n int) *int { return &n }
