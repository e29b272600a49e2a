package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
)

func TestCreateSkill_RoundTrip(t *testing.T) {
	svc, store := newTestService(t)

	created, err := svc.CreateSkill(ctx(), models.Skill{
		Name:         "habit-tracking",
		Description:  "Track daily habits",
		Category:     "habits",
		Triggers:     []string{"check in", "streak"},
		Instructions: "Ask about yesterday first.\n",
		Meta:         models.SkillMeta{UnlockDay: 0},
	})
	require.NoError(t, err)
	assert.False(t, created.Locked)
	assert.True(t, store.Exists(skillPath("habit-tracking")))
	assert.True(t, store.Exists(skillMetaPath("habit-tracking")))

	got, err := svc.GetSkill(ctx(), "habit-tracking", 0)
	require.NoError(t, err)
	assert.Equal(t, "habit-tracking", got.Name)
	assert.Equal(t, "Track daily habits", got.Description)
	assert.Equal(t, "habits", got.Category)
	assert.Equal(t, []string{"check in", "streak"}, got.Triggers)
	assert.Contains(t, got.Instructions, "Ask about yesterday first.")
	assert.False(t, got.Locked)
}

func TestCreateSkill_NameValidation(t *testing.T) {
	svc, _ := newTestService(t)
	for _, name := range []string{"", "Bad Name", "UPPER", "-leading", "has_underscore"} {
		_, err := svc.CreateSkill(ctx(), models.Skill{Name: name})
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestCreateSkill_DuplicateRejected(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateSkill(ctx(), models.Skill{Name: "habit-tracking"})
	require.NoError(t, err)
	_, err = svc.CreateSkill(ctx(), models.Skill{Name: "habit-tracking"})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestGetSkill_LockedBeforeUnlockDay(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateSkill(ctx(), models.Skill{
		Name:         "advanced-goals",
		Triggers:     []string{"goal"},
		Instructions: "Secret playbook.",
		Meta:         models.SkillMeta{UnlockDay: 30},
	})
	require.NoError(t, err)

	locked, err := svc.GetSkill(ctx(), "advanced-goals", 7)
	require.NoError(t, err)
	assert.True(t, locked.Locked)
	assert.Empty(t, locked.Instructions)
	assert.Nil(t, locked.Triggers)

	open, err := svc.GetSkill(ctx(), "advanced-goals", 30)
	require.NoError(t, err)
	assert.False(t, open.Locked)
	assert.Contains(t, open.Instructions, "Secret playbook.")
}

func TestGetSkill_MissingMetaMeansNoGating(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.CreateSkill(ctx(), models.Skill{Name: "habit-tracking", Instructions: "Go."})
	require.NoError(t, err)
	require.NoError(t, store.Delete(skillMetaPath("habit-tracking")))

	got, err := svc.GetSkill(ctx(), "habit-tracking", 0)
	require.NoError(t, err)
	assert.False(t, got.Locked)
	assert.Contains(t, got.Instructions, "Go.")
}

func TestListSkills_IncludesLocked(t *testing.T) {
	svc, _ := newTestService(t)
	_, _ = svc.CreateSkill(ctx(), models.Skill{Name: "open-now", Instructions: "x"})
	_, _ = svc.CreateSkill(ctx(), models.Skill{
		Name: "later", Instructions: "y",
		Meta: models.SkillMeta{UnlockDay: 90},
	})

	skills, err := svc.ListSkills(ctx(), 1)
	require.NoError(t, err)
	require.Len(t, skills, 2)

	byName := map[string]models.Skill{}
	for _, sk := range skills {
		byName[sk.Name] = sk
	}
	assert.False(t, byName["open-now"].Locked)
	assert.True(t, byName["later"].Locked)
	assert.Empty(t, byName["later"].Instructions)
}

func TestDeleteSkill(t *testing.T) {
	svc, _ := newTestService(t)
	_, _ = svc.CreateSkill(ctx(), models.Skill{Name: "habit-tracking"})

	require.NoError(t, svc.DeleteSkill(ctx(), "habit-tracking"))
	_, err := svc.GetSkill(ctx(), "habit-tracking", 0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteSkill(ctx(), "habit-tracking"), apperr.ErrNotFound)
}
