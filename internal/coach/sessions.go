package coach

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
)

// Chat sessions exist only in the chat-sessions.json registry; the
// transcripts live with the external chat pipeline and are out of scope
// here.

// CreateSession registers a new chat session.
func (s *Service) CreateSession(_ context.Context, title, agentID string) (*models.ChatSession, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	now := time.Now().UTC()
	sess := models.ChatSession{
		ID:        uuid.NewString(),
		Title:     title,
		AgentID:   agentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Upsert(sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetSession returns one registry entry.
func (s *Service) GetSession(_ context.Context, id string) (*models.ChatSession, error) {
	sess, ok, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &sess, nil
}

// ListSessions returns all registry entries.
func (s *Service) ListSessions(_ context.Context) ([]models.ChatSession, error) {
	return s.sessions.Load()
}

// SessionUpdate carries optional changes to a session entry.
type SessionUpdate struct {
	Title        *string
	MessageCount *int
}

// UpdateSession applies a partial update and bumps the updated timestamp.
func (s *Service) UpdateSession(ctx context.Context, id string, upd SessionUpdate) (*models.ChatSession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title != "" {
		sess.Title = *upd.Title
	}
	if upd.MessageCount != nil && *upd.MessageCount >= 0 {
		sess.MessageCount = *upd.MessageCount
	}
	sess.UpdatedAt = time.Now().UTC()

	if err := s.sessions.Upsert(*sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes the registry entry.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.GetSession(ctx, id); err != nil {
		return err
	}
	return s.sessions.Remove(id)
}
