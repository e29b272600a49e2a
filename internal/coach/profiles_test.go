package coach

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
)

func TestCreateProfile_FirstIsOwner(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreateProfile(ctx(), "Ada", "ada@example.com")
	require.NoError(t, err)
	assert.True(t, first.Owner)

	second, err := svc.CreateProfile(ctx(), "Grace", "")
	require.NoError(t, err)
	assert.False(t, second.Owner)
}

func TestCreateProfile_NameRequired(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateProfile(ctx(), "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetProfile_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.CreateProfile(ctx(), "Ada", "ada@example.com")
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.True(t, got.Owner)
	assert.False(t, got.OnboardingComplete)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetProfile_Missing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetProfile(ctx(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateProfile_PartialFieldsOnly(t *testing.T) {
	svc, store := newTestService(t)
	created, _ := svc.CreateProfile(ctx(), "Ada", "ada@example.com")

	done := true
	got, err := svc.UpdateProfile(ctx(), created.ID, ProfileUpdate{OnboardingComplete: &done})
	require.NoError(t, err)
	assert.True(t, got.OnboardingComplete)
	// Untouched fields round-trip unchanged.
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)

	data, err := store.Read(profilePath(created.ID))
	require.NoError(t, err)
	_, ok := record.Value(string(data), "Last Modified")
	assert.True(t, ok)
}

func TestDeleteProfile_OwnerIsProtected(t *testing.T) {
	svc, _ := newTestService(t)
	owner, _ := svc.CreateProfile(ctx(), "Ada", "")
	other, _ := svc.CreateProfile(ctx(), "Grace", "")

	// Owner can never be deleted, not even by itself.
	err := svc.DeleteProfile(ctx(), owner.ID, owner.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// Non-owners cannot delete other profiles.
	err = svc.DeleteProfile(ctx(), other.ID, other.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// The owner may delete others.
	require.NoError(t, svc.DeleteProfile(ctx(), other.ID, owner.ID))
	_, err = svc.GetProfile(ctx(), other.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestResolution_MissingFileIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	p, _ := svc.CreateProfile(ctx(), "Ada", "")

	res, err := svc.GetResolution(ctx(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Statement)
	assert.Empty(t, res.Goals)
}

func TestResolution_PutGetRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	p, _ := svc.CreateProfile(ctx(), "Ada", "")

	day := 30
	_, err := svc.PutResolution(ctx(), p.ID, models.Resolution{
		Statement: "Run a marathon",
		Year:      2026,
		Goals: []record.ChecklistItem{
			{Title: "Finish couch to 5k", Day: &day, Achieved: true},
			{Title: "Sign up for the race"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetResolution(ctx(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run a marathon", got.Statement)
	assert.Equal(t, 2026, got.Year)
	require.Len(t, got.Goals, 2)
	assert.Equal(t, "Finish couch to 5k", got.Goals[0].Title)
	require.NotNil(t, got.Goals[0].Day)
	assert.Equal(t, day, *got.Goals[0].Day)
	assert.False(t, got.Goals[1].Achieved)
}

func TestResolution_UnknownProfile(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetResolution(ctx(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
