package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
)

// maxActivityEntries caps the log; the oldest entries beyond the cap are
// dropped on every append.
const maxActivityEntries = 100

const activityHeader = "# Activity Log\n"

// AppendActivity prepends an entry to the challenge's activity log,
// keeping the file reverse-chronological and capped at 100 entries.
// The log has no registry mirror; the markdown file is the only store.
func (s *Service) AppendActivity(ctx context.Context, challengeID string, e models.ActivityEntry) (*models.ActivityEntry, error) {
	if e.Action == "" {
		return nil, fmt.Errorf("%w: action is required", apperr.ErrValidation)
	}
	if e.Type == "" {
		e.Type = models.ActivityNote
	}
	if err := validation.Validate(e.Type, validation.In(anySlice(models.ActivityTypes)...)); err != nil {
		return nil, fmt.Errorf("%w: type: %s", apperr.ErrValidation, err)
	}
	if !s.store.Exists(challengePath(challengeID)) {
		return nil, apperr.ErrNotFound
	}

	e.ID = uuid.NewString()
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	existing, err := s.ListActivity(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	entries := append([]models.ActivityEntry{e}, existing...)
	if len(entries) > maxActivityEntries {
		entries = entries[:maxActivityEntries]
	}

	if err := s.writeRecord(activityPath(challengeID), renderActivityLog(entries)); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListActivity parses the activity log into entries, most recent first.
// A missing log file is a valid empty log.
func (s *Service) ListActivity(_ context.Context, challengeID string) ([]models.ActivityEntry, error) {
	data, err := s.store.Read(activityPath(challengeID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.ActivityEntry{}, nil
		}
		return nil, err
	}

	_, sections := record.Sections(string(data))
	out := make([]models.ActivityEntry, 0, len(sections))
	for _, sec := range sections {
		fields := record.Fields([]byte(sec.Body))
		e := models.ActivityEntry{
			ID:          fields["id"],
			Action:      sec.Header,
			Description: fields["description"],
			Type:        fields["type"],
			Metadata:    fields["metadata"],
		}
		if ts, err := time.Parse(time.RFC3339, fields["timestamp"]); err == nil {
			e.Timestamp = ts
		}
		out = append(out, e)
	}
	return out, nil
}

// logSystemActivity records a best-effort system entry; failures are
// logged and never surfaced to the caller.
func (s *Service) logSystemActivity(ctx context.Context, challengeID, action, description string) {
	s.logSystemActivityTyped(ctx, challengeID, models.ActivitySystem, action, description)
}

func (s *Service) logSystemActivityTyped(ctx context.Context, challengeID, typ, action, description string) {
	_, err := s.AppendActivity(ctx, challengeID, models.ActivityEntry{
		Action:      action,
		Description: description,
		Type:        typ,
	})
	if err != nil {
		s.logger.Warn("activity log append failed",
			slog.String("challenge", challengeID),
			slog.String("error", err.Error()))
	}
}

func renderActivityLog(entries []models.ActivityEntry) string {
	var b strings.Builder
	b.WriteString(activityHeader)
	for _, e := range entries {
		b.WriteString("\n## " + e.Action + "\n\n")
		b.WriteString("- **ID:** " + e.ID + "\n")
		b.WriteString("- **Type:** " + e.Type + "\n")
		b.WriteString("- **Timestamp:** " + e.Timestamp.Format(time.RFC3339) + "\n")
		if e.Description != "" {
			b.WriteString("- **Description:** " + e.Description + "\n")
		}
		if e.Metadata != "" {
			b.WriteString("- **Metadata:** " + e.Metadata + "\n")
		}
	}
	return b.String()
}
