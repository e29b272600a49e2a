package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
)

func TestVisionBoard_CRUD(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateVisionBoard(ctx(), models.VisionBoard{
		Title:  "2026 Vision",
		Images: []string{"assets/image/beach.jpg"},
		Goals:  []string{"Run a marathon"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Affirmations, "nil slices normalize to empty")
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetVisionBoard(ctx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026 Vision", got.Title)
	assert.Equal(t, []string{"Run a marathon"}, got.Goals)

	affirmations := []string{"I show up daily"}
	updated, err := svc.UpdateVisionBoard(ctx(), created.ID, VisionBoardUpdate{Affirmations: affirmations})
	require.NoError(t, err)
	assert.Equal(t, affirmations, updated.Affirmations)
	assert.Equal(t, "2026 Vision", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	boards, err := svc.ListVisionBoards(ctx())
	require.NoError(t, err)
	require.Len(t, boards, 1)

	require.NoError(t, svc.DeleteVisionBoard(ctx(), created.ID))
	_, err = svc.GetVisionBoard(ctx(), created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteVisionBoard(ctx(), created.ID), apperr.ErrNotFound)
}

func TestVisionBoard_TitleRequired(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateVisionBoard(ctx(), models.VisionBoard{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListVisionBoards_EmptyDirectory(t *testing.T) {
	svc, _ := newTestService(t)
	boards, err := svc.ListVisionBoards(ctx())
	require.NoError(t, err)
	assert.Empty(t, boards)
}
