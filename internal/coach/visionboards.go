package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/storage"
)

// Vision boards are the simplest entities: one JSON file per board and no
// markdown parsing at all.

// CreateVisionBoard creates a board JSON file.
func (s *Service) CreateVisionBoard(_ context.Context, b models.VisionBoard) (*models.VisionBoard, error) {
	if b.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	normalizeBoard(&b)

	if err := storage.WriteJSON(s.store, boardPath(b.ID), b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetVisionBoard loads one board.
func (s *Service) GetVisionBoard(_ context.Context, id string) (*models.VisionBoard, error) {
	var b models.VisionBoard
	if err := storage.ReadJSON(s.store, boardPath(id), &b); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListVisionBoards loads every board file.
func (s *Service) ListVisionBoards(ctx context.Context) ([]models.VisionBoard, error) {
	files, err := s.store.ListFiles("vision-boards", ".json")
	if err != nil {
		return nil, err
	}
	out := make([]models.VisionBoard, 0, len(files))
	for _, f := range files {
		id := strings.TrimSuffix(f, ".json")
		b, err := s.GetVisionBoard(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unreadable vision board", slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

// VisionBoardUpdate carries optional changes to a board.
type VisionBoardUpdate struct {
	Title        *string
	Images       []string
	Goals        []string
	Affirmations []string
}

// UpdateVisionBoard applies a partial update.
func (s *Service) UpdateVisionBoard(ctx context.Context, id string, upd VisionBoardUpdate) (*models.VisionBoard, error) {
	b, err := s.GetVisionBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title != "" {
		b.Title = *upd.Title
	}
	if upd.Images != nil {
		b.Images = upd.Images
	}
	if upd.Goals != nil {
		b.Goals = upd.Goals
	}
	if upd.Affirmations != nil {
		b.Affirmations = upd.Affirmations
	}
	b.UpdatedAt = time.Now().UTC()
	normalizeBoard(b)

	if err := storage.WriteJSON(s.store, boardPath(id), b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteVisionBoard removes the board file.
func (s *Service) DeleteVisionBoard(_ context.Context, id string) error {
	if !s.store.Exists(boardPath(id)) {
		return apperr.ErrNotFound
	}
	return s.store.Delete(boardPath(id))
}

func normalizeBoard(b *models.VisionBoard) {
	if b.Images == nil {
		b.Images = []string{}
	}
	if b.Goals == nil {
		b.Goals = []string{}
	}
	if b.Affirmations == nil {
		b.Affirmations = []string{}
	}
}
