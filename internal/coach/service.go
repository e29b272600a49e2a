// Package coach implements the domain services over the markdown record
// store: profiles, agents, challenges with activity logs, skills, vision
// boards, chat session registry, resolutions, and contracts.
//
// Every service follows the same read-modify-write cycle: load the record
// file (a missing file is usually a valid empty state), mutate through the
// record grammar, persist atomically, then update any derived state (JSON
// registry, search index). Derived-state failures after a successful
// primary write are logged, never raised; the stores are allowed to
// drift, per the persistence model.
package coach

import (
	"log/slog"

	"github.com/jfenske89/stride/internal/index"
	"github.com/jfenske89/stride/internal/models"
	"github.com/jfenske89/stride/internal/registry"
	"github.com/jfenske89/stride/internal/storage"
)

// Data tree layout.
const (
	agentsRegistryPath   = "agents/agents.json"
	sessionsRegistryPath = "chat-sessions.json"
	mcpConfigPath        = "mcp-config.json"
)

// Service coordinates storage, registries, and the search index.
type Service struct {
	store    storage.Provider
	db       *index.DB
	agents   *registry.File[models.AgentSummary]
	sessions *registry.File[models.ChatSession]
	logger   *slog.Logger
}

// NewService creates a new coach service. db may be nil when no search
// index is configured; indexing then becomes a no-op.
func NewService(store storage.Provider, db *index.DB, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		db:       db,
		agents:   registry.NewFile[models.AgentSummary](store, agentsRegistryPath),
		sessions: registry.NewFile[models.ChatSession](store, sessionsRegistryPath),
		logger:   logger,
	}
}

// writeRecord persists a markdown record and refreshes its index entry.
// Index failure is non-fatal: the index is derived and self-heals on the
// next sync.
func (s *Service) writeRecord(path, doc string) error {
	data := []byte(doc)
	if err := s.store.Write(path, data); err != nil {
		return err
	}
	if s.db != nil {
		if err := index.IndexFile(s.db, path, data); err != nil {
			s.logger.Warn("index update failed", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	return nil
}

// dropIndexed removes index entries for deleted records (best-effort).
func (s *Service) dropIndexed(paths ...string) {
	if s.db == nil {
		return
	}
	for _, p := range paths {
		if err := s.db.DeleteRecord(p); err != nil {
			s.logger.Warn("index delete failed", slog.String("path", p), slog.String("error", err.Error()))
		}
	}
}

// Search queries the derived search index.
func (s *Service) Search(query string, limit int) ([]index.SearchResult, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.Search(query, limit)
}

func profileDir(id string) string      { return "profiles/" + id }
func profilePath(id string) string     { return "profiles/" + id + "/profile.md" }
func resolutionPath(id string) string  { return "profiles/" + id + "/resolution.md" }
func agentDir(id string) string        { return "agents/" + id }
func agentMDPath(id string) string     { return "agents/" + id + "/agent.md" }
func agentJSONPath(id string) string   { return "agents/" + id + "/agent.json" }
func challengeDir(id string) string    { return "challenges/" + id }
func challengePath(id string) string   { return "challenges/" + id + "/challenge.md" }
func activityPath(id string) string    { return "challenges/" + id + "/activity.md" }
func skillDir(name string) string      { return "skills/" + name }
func skillPath(name string) string     { return "skills/" + name + "/SKILL.md" }
func skillMetaPath(name string) string { return "skills/" + name + "/.skill-meta.json" }
func boardPath(id string) string       { return "vision-boards/" + id + ".json" }
func contractDir(id string) string     { return "contracts/" + id }
func contractPath(id string) string    { return "contracts/" + id + "/contract.md" }
