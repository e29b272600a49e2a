package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfenske89/stride/internal/coach"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// dataRoot is used to resolve the assets directory.
func NewRouter(svc *coach.Service, authEnabled bool, token string, sseHandler http.Handler, dataRoot string) chi.Router {
	h := NewHandler(svc)
	ah := NewAssetHandler(dataRoot)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Profiles and the per-profile resolution.
	r.Get("/profiles", h.ListProfiles)
	r.Post("/profiles", h.CreateProfile)
	r.Get("/profiles/{id}", h.GetProfile)
	r.Patch("/profiles/{id}", h.UpdateProfile)
	r.Delete("/profiles/{id}", h.DeleteProfile)
	r.Get("/profiles/{id}/resolution", h.GetResolution)
	r.Put("/profiles/{id}/resolution", h.PutResolution)

	// Agents.
	r.Get("/agents", h.ListAgents)
	r.Post("/agents", h.CreateAgent)
	r.Post("/agents/registry/rebuild", h.RebuildAgentRegistry)
	r.Get("/agents/{id}", h.GetAgent)
	r.Patch("/agents/{id}", h.UpdateAgent)
	r.Put("/agents/{id}/skills", h.UpdateAgentSkills)
	r.Delete("/agents/{id}", h.DeleteAgent)

	// Challenges, check-ins, and the activity log.
	r.Get("/challenges", h.ListChallenges)
	r.Post("/challenges", h.CreateChallenge)
	r.Get("/challenges/{id}", h.GetChallenge)
	r.Patch("/challenges/{id}", h.UpdateChallenge)
	r.Delete("/challenges/{id}", h.DeleteChallenge)
	r.Put("/challenges/{id}/status", h.SetChallengeStatus)
	r.Post("/challenges/{id}/checkin", h.CheckIn)
	r.Put("/challenges/{id}/milestones", h.UpdateMilestones)
	r.Get("/challenges/{id}/activity", h.ListActivity)
	r.Post("/challenges/{id}/activity", h.AppendActivity)

	// Skills.
	r.Get("/skills", h.ListSkills)
	r.Post("/skills", h.CreateSkill)
	r.Get("/skills/{name}", h.GetSkill)
	r.Delete("/skills/{name}", h.DeleteSkill)

	// Vision boards.
	r.Get("/vision-boards", h.ListVisionBoards)
	r.Post("/vision-boards", h.CreateVisionBoard)
	r.Get("/vision-boards/{id}", h.GetVisionBoard)
	r.Patch("/vision-boards/{id}", h.UpdateVisionBoard)
	r.Delete("/vision-boards/{id}", h.DeleteVisionBoard)

	// Chat session registry.
	r.Get("/sessions", h.ListSessions)
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/{id}", h.GetSession)
	r.Patch("/sessions/{id}", h.UpdateSession)
	r.Delete("/sessions/{id}", h.DeleteSession)

	// Commitment contracts.
	r.Get("/contracts", h.ListContracts)
	r.Post("/contracts", h.CreateContract)
	r.Get("/contracts/{id}", h.GetContract)
	r.Delete("/contracts/{id}", h.DeleteContract)
	r.Post("/contracts/{id}/sign", h.SignContract)
	r.Put("/contracts/{id}/terms", h.UpdateContractTerms)

	// MCP configuration passthrough.
	r.Get("/mcp-config", h.GetMCPConfig)
	r.Put("/mcp-config", h.PutMCPConfig)

	// Search.
	r.Get("/search", h.Search)

	// Asset upload (auth-protected).
	r.Post("/assets/{type}", ah.Upload)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
