package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfenske89/stride/internal/coach"
	"github.com/jfenske89/stride/internal/models"
)

const maxBodyBytes = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *coach.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *coach.Service) *Handler {
	return &Handler{svc: svc}
}

// decode reads a JSON request body with a size cap.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListProfiles handles GET /api/profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.ListProfiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: profiles, Total: len(profiles)})
}

// CreateProfile handles POST /api/profiles.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.svc.CreateProfile(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetProfile handles GET /api/profiles/{id}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile handles PATCH /api/profiles/{id}.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.svc.UpdateProfile(r.Context(), chi.URLParam(r, "id"), coach.ProfileUpdate{
		Name:               req.Name,
		Email:              req.Email,
		OnboardingComplete: req.OnboardingComplete,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProfile handles DELETE /api/profiles/{id}. The requesting profile
// is identified by the X-Profile-ID header.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	requester := r.Header.Get("X-Profile-ID")
	if err := h.svc.DeleteProfile(r.Context(), chi.URLParam(r, "id"), requester); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetResolution handles GET /api/profiles/{id}/resolution.
func (h *Handler) GetResolution(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetResolution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PutResolution handles PUT /api/profiles/{id}/resolution.
func (h *Handler) PutResolution(w http.ResponseWriter, r *http.Request) {
	var req models.Resolution
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.PutResolution(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
