package coach

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
	"github.com/jfenske89/stride/internal/storage"
)

func TestCreateChallenge_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	c, err := svc.CreateChallenge(ctx(), "Run every day", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, c.Status)

	got, err := svc.GetChallenge(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run every day", got.Title)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, 0, got.Streak.Current)
	assert.Equal(t, 0, got.Streak.Best)
	assert.Empty(t, got.LastCheckIn)
	assert.Empty(t, got.Milestones)
}

func TestCreateChallenge_TitleRequired(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateChallenge(ctx(), "", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateChallenge_LogsCreationActivity(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.CreateChallenge(ctx(), "Run every day", nil)
	require.NoError(t, err)

	entries, err := svc.ListActivity(ctx(), c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Challenge Created", entries[0].Action)
	assert.Equal(t, models.ActivitySystem, entries[0].Type)
}

func TestUpdateChallenge_TitleAndProgress(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	title := "Run every single day"
	progress := 150
	got, err := svc.UpdateChallenge(ctx(), c.ID, ChallengeUpdate{Title: &title, Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, 100, got.Progress, "progress clamps to 100")

	negative := -5
	got, err = svc.UpdateChallenge(ctx(), c.ID, ChallengeUpdate{Progress: &negative})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestSetChallengeStatus_AnyToAny(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	for _, status := range []string{
		models.StatusActive,
		models.StatusCompleted,
		models.StatusPaused,
		models.StatusFailed,
		models.StatusActive,
	} {
		got, err := svc.SetChallengeStatus(ctx(), c.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestSetChallengeStatus_RejectsUnknownValue(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)
	_, _ = svc.SetChallengeStatus(ctx(), c.ID, models.StatusActive)

	_, err := svc.SetChallengeStatus(ctx(), c.ID, "archived")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := svc.GetChallenge(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status, "stored status unchanged after rejection")
}

func TestSetChallengeStatus_LogsTransition(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)
	_, err := svc.SetChallengeStatus(ctx(), c.ID, models.StatusActive)
	require.NoError(t, err)

	entries, err := svc.ListActivity(ctx(), c.ID)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, models.ActivityStatusChange, entries[0].Type)
	assert.Contains(t, entries[0].Description, "pending")
	assert.Contains(t, entries[0].Description, "active")
}

func TestCheckIn_FirstEverStartsStreak(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	res, err := svc.CheckIn(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Challenge.Streak.Current)
	assert.Equal(t, 1, res.Challenge.Streak.Best)
	assert.Equal(t, time.Now().Format(checkInDateLayout), res.Challenge.LastCheckIn)
	assert.NotEmpty(t, res.Encouragement)
}

func TestCheckIn_SameDayIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	_, err := svc.CheckIn(ctx(), c.ID)
	require.NoError(t, err)
	res, err := svc.CheckIn(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Challenge.Streak.Current)
	assert.Equal(t, 1, res.Challenge.Streak.Best)
}

func TestCheckIn_ConsecutiveDayExtends(t *testing.T) {
	svc, store := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	yesterday := time.Now().AddDate(0, 0, -1).Format(checkInDateLayout)
	setCheckInState(t, store, c.ID, yesterday, 3, 5)

	res, err := svc.CheckIn(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Challenge.Streak.Current)
	assert.Equal(t, 5, res.Challenge.Streak.Best, "best is a high-water mark")
}

func TestCheckIn_GapResetsToOne(t *testing.T) {
	svc, store := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	lastWeek := time.Now().AddDate(0, 0, -7).Format(checkInDateLayout)
	setCheckInState(t, store, c.ID, lastWeek, 9, 9)

	res, err := svc.CheckIn(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Challenge.Streak.Current)
	assert.Equal(t, 9, res.Challenge.Streak.Best)
}

func TestCheckIn_NewBestTracksCurrent(t *testing.T) {
	svc, store := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	yesterday := time.Now().AddDate(0, 0, -1).Format(checkInDateLayout)
	setCheckInState(t, store, c.ID, yesterday, 5, 5)

	res, err := svc.CheckIn(ctx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Challenge.Streak.Current)
	assert.Equal(t, 6, res.Challenge.Streak.Best)
}

func TestUpdateMilestones_ReplacesChecklist(t *testing.T) {
	svc, _ := newTestService(t)
	day := 14
	c, _ := svc.CreateChallenge(ctx(), "Run every day", []models.Milestone{
		{Title: "First run"},
	})

	got, err := svc.UpdateMilestones(ctx(), c.ID, []models.Milestone{
		{Title: "First run", Achieved: true},
		{Title: "Two weeks in", Day: &day},
	})
	require.NoError(t, err)
	require.Len(t, got.Milestones, 2)
	assert.True(t, got.Milestones[0].Achieved)
	require.NotNil(t, got.Milestones[1].Day)
	assert.Equal(t, day, *got.Milestones[1].Day)
}

func TestDeleteChallenge_RemovesLogToo(t *testing.T) {
	svc, store := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	require.NoError(t, svc.DeleteChallenge(ctx(), c.ID))
	_, err := svc.GetChallenge(ctx(), c.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.False(t, store.Exists(activityPath(c.ID)))

	assert.ErrorIs(t, svc.DeleteChallenge(ctx(), c.ID), apperr.ErrNotFound)
}

func TestUpdateChallenge_ConcurrentWritersOneWins(t *testing.T) {
	svc, _ := newTestService(t)
	c, _ := svc.CreateChallenge(ctx(), "Run every day", nil)

	var wg sync.WaitGroup
	for _, p := range []int{10, 20} {
		wg.Add(1)
		go func(progress int) {
			defer wg.Done()
			_, _ = svc.UpdateChallenge(ctx(), c.ID, ChallengeUpdate{Progress: &progress})
		}(p)
	}
	wg.Wait()

	got, err := svc.GetChallenge(ctx(), c.ID)
	require.NoError(t, err)
	assert.Contains(t, []int{10, 20}, got.Progress, "last writer wins, no torn document")
}

// setCheckInState rewrites the stored streak fields directly to simulate
// check-ins from earlier days.
func setCheckInState(t *testing.T, store storage.Provider, id, lastCheckIn string, current, best int) {
	t.Helper()
	data, err := store.Read(challengePath(id))
	require.NoError(t, err)
	doc := record.Update(string(data),
		record.Pair{Label: "Last Check-In", Value: lastCheckIn},
		record.Pair{Label: "Current Streak", Value: strconv.Itoa(current)},
		record.Pair{Label: "Best Streak", Value: strconv.Itoa(best)},
	)
	require.NoError(t, store.Write(challengePath(id), []byte(doc)))
}
