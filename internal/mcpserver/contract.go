package mcpserver

// RecordFormatContract describes the canonical markdown record format that
// LLM consumers should follow when writing record content.
const RecordFormatContract = `# Stride Record Format Contract

Every markdown record stored in Stride MUST follow this structure.

## Structure

` + "```" + `markdown
# Record Title

- **ID:** 3f2a...                   # REQUIRED on entity records
- **Status:** active                # field lines: "- **Label:** value"
- **Progress:** 40%                 # numeric fields may carry a % suffix
- **Last Modified:** 2026-08-31     # refreshed on every update

## Milestones

- [x] First week done (Day 7)
- [ ] One month strong (Day 30)

---
` + "```" + `

## Rules

1. **Field lines** use the exact shape ` + "`" + `- **Label:** value` + "`" + `. The label is
   matched case-insensitively; labels must not contain a colon.
2. **Numeric fields** (progress, streaks) are bare integers, optionally with
   a ` + "`" + `%` + "`" + ` suffix. A missing numeric field reads as 0.
3. **Checkbox items** use ` + "`" + `- [ ]` + "`" + ` / ` + "`" + `- [x]` + "`" + `, with an optional
   ` + "`" + `(Day N)` + "`" + ` suffix for day-targeted items.
4. **Sections** start with a ` + "`" + `## ` + "`" + ` heading and run until the next
   section or a terminal ` + "`" + `---` + "`" + ` line.
5. **Updates never invent fields.** Writing a value for a label that is not
   present in the record leaves the record unchanged.
6. **Timestamps** are ISO-8601 (RFC 3339 for activity entries, plain
   ` + "`" + `YYYY-MM-DD` + "`" + ` for Last Modified and check-in dates).
7. **Encoding** is UTF-8 with a trailing newline; paths use forward slashes.

## Activity log entries

The activity log (` + "`" + `challenges/<id>/activity.md` + "`" + `) is reverse-chronological:
newest entry first, capped at 100 entries. Each entry is a section:

` + "```" + `markdown
## Morning Run

- **ID:** 9c41...
- **Type:** check_in
- **Timestamp:** 2026-08-31T07:15:00Z
- **Description:** 5k before breakfast
` + "```" + `

Valid types: ` + "`" + `check_in` + "`" + `, ` + "`" + `milestone` + "`" + `, ` + "`" + `status_change` + "`" + `,
` + "`" + `note` + "`" + `, ` + "`" + `system` + "`" + `. Prefer ` + "`" + `log_activity` + "`" + ` over writing the
file directly.
`
