package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfenske89/stride/internal/coach"
	"github.com/jfenske89/stride/internal/models"
)

// ListChallenges handles GET /api/challenges.
func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.svc.ListChallenges(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: challenges, Total: len(challenges)})
}

// CreateChallenge handles POST /api/challenges.
func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req CreateChallengeRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.CreateChallenge(r.Context(), req.Title, req.Milestones)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetChallenge handles GET /api/challenges/{id}.
func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetChallenge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateChallenge handles PATCH /api/challenges/{id}.
func (h *Handler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	var req UpdateChallengeRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.UpdateChallenge(r.Context(), chi.URLParam(r, "id"), coach.ChallengeUpdate{
		Title:    req.Title,
		Progress: req.Progress,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// SetChallengeStatus handles PUT /api/challenges/{id}/status.
func (h *Handler) SetChallengeStatus(w http.ResponseWriter, r *http.Request) {
	var req ChallengeStatusRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.SetChallengeStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CheckIn handles POST /api/challenges/{id}/checkin.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CheckIn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateMilestones handles PUT /api/challenges/{id}/milestones.
func (h *Handler) UpdateMilestones(w http.ResponseWriter, r *http.Request) {
	var req MilestonesRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.UpdateMilestones(r.Context(), chi.URLParam(r, "id"), req.Milestones)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListActivity handles GET /api/challenges/{id}/activity.
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListActivity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: entries, Total: len(entries)})
}

// AppendActivity handles POST /api/challenges/{id}/activity.
func (h *Handler) AppendActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := h.svc.AppendActivity(r.Context(), chi.URLParam(r, "id"), models.ActivityEntry{
		Action:      req.Action,
		Description: req.Description,
		Type:        req.Type,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// DeleteChallenge handles DELETE /api/challenges/{id}.
func (h *Handler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteChallenge(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
