package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfenske89/stride/internal/apperr"
)

func TestSessions_RegistryLifecycle(t *testing.T) {
	svc, store := newTestService(t)

	sess, err := svc.CreateSession(ctx(), "Monday check-in", "agent-1")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.True(t, store.Exists(sessionsRegistryPath))

	got, err := svc.GetSession(ctx(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monday check-in", got.Title)
	assert.Equal(t, "agent-1", got.AgentID)
	assert.Zero(t, got.MessageCount)

	count := 12
	updated, err := svc.UpdateSession(ctx(), sess.ID, SessionUpdate{MessageCount: &count})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.MessageCount)
	assert.Equal(t, "Monday check-in", updated.Title)

	all, err := svc.ListSessions(ctx())
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, svc.DeleteSession(ctx(), sess.ID))
	_, err = svc.GetSession(ctx(), sess.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateSession_TitleRequired(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateSession(ctx(), "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListSessions_MissingRegistryIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	all, err := svc.ListSessions(ctx())
	require.NoError(t, err)
	assert.Empty(t, all)
}
