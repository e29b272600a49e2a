package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
)

const checkInDateLayout = "2006-01-02"

// encouragements rotate through check-in responses. The upstream
// motivational-quote API is out of scope, so the fallback lives here.
var encouragements = []string{
	"Showing up is the hardest part. Done.",
	"Another day banked. Keep the chain going.",
	"Consistency beats intensity.",
	"Small steps, big streaks.",
}

// CreateChallenge creates a challenge record in the pending state with an
// empty activity log.
func (s *Service) CreateChallenge(ctx context.Context, title string, milestones []models.Milestone) (*models.Challenge, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	c := &models.Challenge{
		ID:         uuid.NewString(),
		Title:      title,
		Status:     models.StatusPending,
		Milestones: milestones,
	}
	if c.Milestones == nil {
		c.Milestones = []models.Milestone{}
	}

	doc := record.New(c.Title,
		record.Pair{Label: "ID", Value: c.ID},
		record.Pair{Label: "Status", Value: c.Status},
		record.Pair{Label: "Progress", Value: "0%"},
		record.Pair{Label: "Current Streak", Value: "0"},
		record.Pair{Label: "Best Streak", Value: "0"},
		record.Pair{Label: "Last Check-In", Value: ""},
		record.Pair{Label: "Last Modified", Value: time.Now().Format(checkInDateLayout)},
	)
	doc = record.EnsureSection(doc, "Milestones")
	doc = record.ReplaceSection(doc, "Milestones", c.Milestones)

	if err := s.writeRecord(challengePath(c.ID), doc); err != nil {
		return nil, err
	}

	s.logSystemActivity(ctx, c.ID, "Challenge Created", "Challenge "+c.Title+" created")
	return c, nil
}

// GetChallenge parses challenge.md into a Challenge. Numeric fields
// default to 0 when absent so streak arithmetic stays safe.
func (s *Service) GetChallenge(_ context.Context, id string) (*models.Challenge, error) {
	data, err := s.store.Read(challengePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return challengeFromDoc(id, data), nil
}

// ListChallenges scans the challenges directory. There is no registry for
// challenges; every list re-parses the markdown records.
func (s *Service) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	dirs, err := s.store.ListDirs("challenges")
	if err != nil {
		return nil, err
	}
	out := make([]models.Challenge, 0, len(dirs))
	for _, id := range dirs {
		c, err := s.GetChallenge(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unreadable challenge", slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

// ChallengeUpdate carries optional field changes for a challenge.
type ChallengeUpdate struct {
	Title    *string
	Progress *int
}

// UpdateChallenge applies a partial update to the challenge record.
func (s *Service) UpdateChallenge(ctx context.Context, id string, upd ChallengeUpdate) (*models.Challenge, error) {
	data, err := s.store.Read(challengePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	doc := string(data)
	if upd.Title != nil && *upd.Title != "" {
		// The title is the document heading, not a field line.
		doc = replaceHeading(doc, *upd.Title)
	}
	if upd.Progress != nil {
		p := *upd.Progress
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		doc = record.Update(doc, record.Pair{Label: "Progress", Value: strconv.Itoa(p) + "%"})
	} else {
		doc = record.Update(doc)
	}

	if err := s.writeRecord(challengePath(id), doc); err != nil {
		return nil, err
	}
	return s.GetChallenge(ctx, id)
}

// SetChallengeStatus sets the status field. Any value in the fixed enum is
// accepted from any prior state; values outside the enum are rejected and
// the stored status is left unchanged.
func (s *Service) SetChallengeStatus(ctx context.Context, id, status string) (*models.Challenge, error) {
	if err := validation.Validate(status,
		validation.Required,
		validation.In(anySlice(models.ChallengeStatuses)...),
	); err != nil {
		return nil, fmt.Errorf("%w: status: %s", apperr.ErrValidation, err)
	}

	data, err := s.store.Read(challengePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	prev := challengeFromDoc(id, data).Status
	doc := record.Update(string(data), record.Pair{Label: "Status", Value: status})
	if err := s.writeRecord(challengePath(id), doc); err != nil {
		return nil, err
	}

	s.logSystemActivityTyped(ctx, id, models.ActivityStatusChange, "Status Changed",
		fmt.Sprintf("Status changed from %s to %s", prev, status))
	return s.GetChallenge(ctx, id)
}

// UpdateMilestones replaces the `## Milestones` checklist.
func (s *Service) UpdateMilestones(ctx context.Context, id string, items []models.Milestone) (*models.Challenge, error) {
	data, err := s.store.Read(challengePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if items == nil {
		items = []models.Milestone{}
	}

	doc := record.EnsureSection(string(data), "Milestones")
	doc = record.ReplaceSection(doc, "Milestones", items)
	doc = record.Update(doc)

	if err := s.writeRecord(challengePath(id), doc); err != nil {
		return nil, err
	}
	return s.GetChallenge(ctx, id)
}

// CheckInResult is the response of a daily check-in.
type CheckInResult struct {
	Challenge     *models.Challenge `json:"challenge"`
	Encouragement string            `json:"encouragement"`
}

// CheckIn records a daily check-in and applies the streak heuristic:
// a repeat check-in on the same day leaves the streak unchanged, a
// check-in on the day after the last one extends it, and any longer gap
// resets it to 1. The best streak is the high-water mark.
func (s *Service) CheckIn(ctx context.Context, id string) (*CheckInResult, error) {
	data, err := s.store.Read(challengePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	c := challengeFromDoc(id, data)
	today := time.Now().Format(checkInDateLayout)
	current := c.Streak.Current

	switch {
	case c.LastCheckIn == today:
		// Already checked in today; streak unchanged.
	case isYesterday(c.LastCheckIn, today):
		current++
	default:
		current = 1
	}
	best := c.Streak.Best
	if current > best {
		best = current
	}

	doc := record.Update(string(data),
		record.Pair{Label: "Current Streak", Value: strconv.Itoa(current)},
		record.Pair{Label: "Best Streak", Value: strconv.Itoa(best)},
		record.Pair{Label: "Last Check-In", Value: today},
	)
	if err := s.writeRecord(challengePath(id), doc); err != nil {
		return nil, err
	}

	s.logSystemActivityTyped(ctx, id, models.ActivityCheckIn, "Daily Check-In",
		fmt.Sprintf("Checked in on %s (streak %d)", today, current))

	updated, err := s.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CheckInResult{
		Challenge:     updated,
		Encouragement: encouragements[current%len(encouragements)],
	}, nil
}

// DeleteChallenge removes the challenge directory, including the activity
// log and any assets stored alongside it.
func (s *Service) DeleteChallenge(ctx context.Context, id string) error {
	if _, err := s.GetChallenge(ctx, id); err != nil {
		return err
	}
	if err := s.store.RemoveAll(challengeDir(id)); err != nil {
		return err
	}
	s.dropIndexed(challengePath(id), activityPath(id))
	return nil
}

func challengeFromDoc(id string, data []byte) *models.Challenge {
	doc := string(data)
	fields := record.Fields(data)

	c := &models.Challenge{
		ID:          fields["id"],
		Title:       headingOf(doc),
		Status:      fields["status"],
		Progress:    record.Int(doc, "Progress"),
		LastCheckIn: fields["last_check-in"],
		Streak: models.Streak{
			Current: record.Int(doc, "Current Streak"),
			Best:    record.Int(doc, "Best Streak"),
		},
		Milestones: []models.Milestone{},
	}
	if c.ID == "" {
		c.ID = id
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}

	_, sections := record.Sections(doc)
	for _, sec := range sections {
		if sec.Header == "Milestones" {
			c.Milestones = record.Checklist(sec.Body)
			break
		}
	}
	if c.Milestones == nil {
		c.Milestones = []models.Milestone{}
	}
	return c
}

// isYesterday reports whether last is exactly one calendar day before today.
func isYesterday(last, today string) bool {
	lt, err1 := time.Parse(checkInDateLayout, last)
	tt, err2 := time.Parse(checkInDateLayout, today)
	if err1 != nil || err2 != nil {
		return false
	}
	return lt.AddDate(0, 0, 1).Equal(tt)
}

// headingOf returns the first `# ` heading of a document.
func headingOf(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// replaceHeading rewrites the first `# ` heading line in place.
func replaceHeading(doc, title string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "# ") {
			lines[i] = "# " + title
			break
		}
	}
	return strings.Join(lines, "\n")
}

func anySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
