package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jfenske89/stride/internal/apperr"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/record"
	"github.com/jfenske89/stride/internal/storage"
)

// Agents are dual-stored: the agents.json registry is authoritative for
// listing, the per-agent agent.md / agent.json pair for instructions.
// Each mutation writes the per-agent files first, then mirrors into the
// registry; a registry failure after a successful file write is logged
// and swallowed, so the two stores may drift until the next full write.

// CreateAgent creates a new agent and registers it.
func (s *Service) CreateAgent(_ context.Context, a models.Agent) (*models.Agent, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	a.ID = uuid.NewString()
	if a.Skills == nil {
		a.Skills = []string{}
	}

	if err := s.persistAgent(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAgent loads the full agent from its per-agent JSON file, which is
// the authority for instructions.
func (s *Service) GetAgent(_ context.Context, id string) (*models.Agent, error) {
	var a models.Agent
	if err := storage.ReadJSON(s.store, agentJSONPath(id), &a); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAgents returns the registry contents; markdown files are not
// re-parsed on the list path.
func (s *Service) ListAgents(_ context.Context) ([]models.AgentSummary, error) {
	return s.agents.Load()
}

// AgentUpdate carries optional field changes for an agent.
type AgentUpdate struct {
	Name         *string
	Description  *string
	Personality  *string
	Instructions *string
	Capabilities map[string]string
}

// UpdateAgent applies a partial update and re-syncs both stores.
func (s *Service) UpdateAgent(ctx context.Context, id string, upd AgentUpdate) (*models.Agent, error) {
	a, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Personality != nil {
		a.Personality = *upd.Personality
	}
	if upd.Instructions != nil {
		a.Instructions = *upd.Instructions
	}
	if upd.Capabilities != nil {
		a.Capabilities = upd.Capabilities
	}

	if err := s.persistAgent(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAgentSkills replaces the agent's skill list in all three places:
// agent.json, the `## Skills` section of agent.md (created when missing),
// and the registry mirror.
func (s *Service) UpdateAgentSkills(ctx context.Context, id string, skills []string) (*models.Agent, error) {
	a, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []string{}
	}
	a.Skills = skills

	if err := storage.WriteJSON(s.store, agentJSONPath(id), a); err != nil {
		return nil, err
	}

	// Section update on the markdown twin: ensure the section exists
	// before replacing, so a hand-edited file without it still converges.
	if data, err := s.store.Read(agentMDPath(id)); err == nil {
		doc := record.EnsureSection(string(data), "Skills")
		doc = record.ReplaceSection(doc, "Skills", skills)
		doc = record.Update(doc) // refresh Last Modified only
		if err := s.writeRecord(agentMDPath(id), doc); err != nil {
			s.logger.Warn("agent.md skills update failed", slog.String("id", id), slog.String("error", err.Error()))
		}
	} else {
		s.logger.Warn("agent.md missing during skills update", slog.String("id", id))
	}

	s.mirrorAgent(a)
	return a, nil
}

// DeleteAgent removes the registry entry and the per-agent directory.
func (s *Service) DeleteAgent(ctx context.Context, id string) error {
	if _, err := s.GetAgent(ctx, id); err != nil {
		return err
	}
	if err := s.store.RemoveAll(agentDir(id)); err != nil {
		return err
	}
	if err := s.agents.Remove(id); err != nil {
		s.logger.Warn("agent registry remove failed", slog.String("id", id), slog.String("error", err.Error()))
	}
	s.dropIndexed(agentMDPath(id))
	return nil
}

// RebuildAgentRegistry rebuilds agents.json from the per-agent JSON files.
// This is an explicit maintenance operation, not an automatic recovery
// path; normal request handling never calls it.
func (s *Service) RebuildAgentRegistry(ctx context.Context) (int, error) {
	dirs, err := s.store.ListDirs("agents")
	if err != nil {
		return 0, err
	}
	entries := make([]models.AgentSummary, 0, len(dirs))
	for _, id := range dirs {
		a, err := s.GetAgent(ctx, id)
		if err != nil {
			s.logger.Warn("rebuild: skipping agent", slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		entries = append(entries, summaryOf(a))
	}
	if err := s.agents.Save(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// persistAgent writes agent.json and agent.md, then mirrors the summary
// into the registry.
func (s *Service) persistAgent(a *models.Agent) error {
	if err := storage.WriteJSON(s.store, agentJSONPath(a.ID), a); err != nil {
		return err
	}
	if err := s.writeRecord(agentMDPath(a.ID), agentDoc(a)); err != nil {
		return err
	}
	s.mirrorAgent(a)
	return nil
}

// mirrorAgent updates the registry copy; failure is non-fatal.
func (s *Service) mirrorAgent(a *models.Agent) {
	if err := s.agents.Upsert(summaryOf(a)); err != nil {
		s.logger.Warn("agent registry update failed", slog.String("id", a.ID), slog.String("error", err.Error()))
	}
}

func summaryOf(a *models.Agent) models.AgentSummary {
	return models.AgentSummary{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Skills:      a.Skills,
	}
}

func agentDoc(a *models.Agent) string {
	doc := record.New("Agent: "+a.Name,
		record.Pair{Label: "ID", Value: a.ID},
		record.Pair{Label: "Name", Value: a.Name},
		record.Pair{Label: "Description", Value: a.Description},
		record.Pair{Label: "Personality", Value: a.Personality},
		record.Pair{Label: "Last Modified", Value: time.Now().Format("2006-01-02")},
	)
	doc = record.EnsureSection(doc, "Skills")
	doc = record.ReplaceSection(doc, "Skills", a.Skills)
	doc = record.EnsureSection(doc, "Capabilities")
	doc = record.ReplaceSection(doc, "Capabilities", a.Capabilities)
	return doc
}
