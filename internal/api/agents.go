package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfenske89/stride/internal/coach"
	"github.com/jfenske89/stride/internal/models"
)

// ListAgents handles GET /api/agents. The response comes from the
// agents.json registry, not from the per-agent files.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.svc.ListAgents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: agents, Total: len(agents)})
}

// CreateAgent handles POST /api/agents.
func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req CreateAgentRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.svc.CreateAgent(r.Context(), models.Agent{
		Name:         req.Name,
		Description:  req.Description,
		Personality:  req.Personality,
		Instructions: req.Instructions,
		Skills:       req.Skills,
		Capabilities: req.Capabilities,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// GetAgent handles GET /api/agents/{id}.
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAgent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// UpdateAgent handles PATCH /api/agents/{id}.
func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	var req UpdateAgentRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.svc.UpdateAgent(r.Context(), chi.URLParam(r, "id"), coach.AgentUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Personality:  req.Personality,
		Instructions: req.Instructions,
		Capabilities: req.Capabilities,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// UpdateAgentSkills handles PUT /api/agents/{id}/skills.
func (h *Handler) UpdateAgentSkills(w http.ResponseWriter, r *http.Request) {
	var req AgentSkillsRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.svc.UpdateAgentSkills(r.Context(), chi.URLParam(r, "id"), req.Skills)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DeleteAgent handles DELETE /api/agents/{id}.
func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAgent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RebuildAgentRegistry handles POST /api/agents/registry/rebuild. It
// regenerates agents.json from the per-agent files.
func (h *Handler) RebuildAgentRegistry(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.RebuildAgentRegistry(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"agents": n})
}
