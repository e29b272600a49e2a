package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jfenske89/stride/internal/coach"
	"github.com/jfenske89/stride/internal/index"
	"github.com/jfenske89/stride/internal/models"
)

// ListSkills handles GET /api/skills. Locked skills are listed with
// instructions withheld.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	day := h.svc.DaysSinceOwnerCreated(r.Context())
	skills, err := h.svc.ListSkills(r.Context(), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: skills, Total: len(skills)})
}

// CreateSkill handles POST /api/skills.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req CreateSkillRequest
	if !decode(w, r, &req) {
		return
	}
	sk, err := h.svc.CreateSkill(r.Context(), models.Skill{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Triggers:     req.Triggers,
		Instructions: req.Instructions,
		Meta:         req.Meta,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sk)
}

// GetSkill handles GET /api/skills/{name}.
func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	day := h.svc.DaysSinceOwnerCreated(r.Context())
	sk, err := h.svc.GetSkill(r.Context(), chi.URLParam(r, "name"), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

// DeleteSkill handles DELETE /api/skills/{name}.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSkill(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVisionBoards handles GET /api/vision-boards.
func (h *Handler) ListVisionBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.ListVisionBoards(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: boards, Total: len(boards)})
}

// CreateVisionBoard handles POST /api/vision-boards.
func (h *Handler) CreateVisionBoard(w http.ResponseWriter, r *http.Request) {
	var req models.VisionBoard
	if !decode(w, r, &req) {
		return
	}
	b, err := h.svc.CreateVisionBoard(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// GetVisionBoard handles GET /api/vision-boards/{id}.
func (h *Handler) GetVisionBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetVisionBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateVisionBoard handles PATCH /api/vision-boards/{id}.
func (h *Handler) UpdateVisionBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        *string  `json:"title"`
		Images       []string `json:"images"`
		Goals        []string `json:"goals"`
		Affirmations []string `json:"affirmations"`
	}
	if !decode(w, r, &req) {
		return
	}
	b, err := h.svc.UpdateVisionBoard(r.Context(), chi.URLParam(r, "id"), coach.VisionBoardUpdate{
		Title:        req.Title,
		Images:       req.Images,
		Goals:        req.Goals,
		Affirmations: req.Affirmations,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// DeleteVisionBoard handles DELETE /api/vision-boards/{id}.
func (h *Handler) DeleteVisionBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVisionBoard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSessions handles GET /api/sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.ListSessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: sessions, Total: len(sessions)})
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.svc.CreateSession(r.Context(), req.Title, req.AgentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /api/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// UpdateSession handles PATCH /api/sessions/{id}.
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.svc.UpdateSession(r.Context(), chi.URLParam(r, "id"), coach.SessionUpdate{
		Title:        req.Title,
		MessageCount: req.MessageCount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListContracts handles GET /api/contracts.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.svc.ListContracts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: contracts, Total: len(contracts)})
}

// CreateContract handles POST /api/contracts.
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req models.Contract
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.CreateContract(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetContract handles GET /api/contracts/{id}.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// SignContract handles POST /api/contracts/{id}/sign.
func (h *Handler) SignContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.SignContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateContractTerms handles PUT /api/contracts/{id}/terms.
func (h *Handler) UpdateContractTerms(w http.ResponseWriter, r *http.Request) {
	var req ContractTermsRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.UpdateContractTerms(r.Context(), chi.URLParam(r, "id"), req.Terms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteContract handles DELETE /api/contracts/{id}.
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteContract(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMCPConfig handles GET /api/mcp-config. The stored JSON is returned
// verbatim.
func (h *Handler) GetMCPConfig(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.GetMCPConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// PutMCPConfig handles PUT /api/mcp-config.
func (h *Handler) PutMCPConfig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	if err := h.svc.PutMCPConfig(r.Context(), json.RawMessage(raw)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(q, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
