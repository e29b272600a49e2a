package api

import (
	"github.com/jfenske89/stride/internal/index"
	"github.com/jfenske89/stride/internal/models"
)

// CreateProfileRequest is the request body for creating a profile.
type CreateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfileRequest carries a partial profile update; absent fields are
// left untouched.
type UpdateProfileRequest struct {
	Name               *string `json:"name"`
	Email              *string `json:"email"`
	OnboardingComplete *bool   `json:"onboarding_complete"`
}

// CreateAgentRequest is the request body for creating an agent.
type CreateAgentRequest struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Personality  string            `json:"personality"`
	Instructions string            `json:"instructions"`
	Skills       []string          `json:"skills"`
	Capabilities map[string]string `json:"capabilities"`
}

// UpdateAgentRequest carries a partial agent update.
type UpdateAgentRequest struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	Personality  *string           `json:"personality"`
	Instructions *string           `json:"instructions"`
	Capabilities map[string]string `json:"capabilities"`
}

// AgentSkillsRequest replaces an agent's skill list.
type AgentSkillsRequest struct {
	Skills []string `json:"skills"`
}

// CreateChallengeRequest is the request body for creating a challenge.
type CreateChallengeRequest struct {
	Title      string             `json:"title"`
	Milestones []models.Milestone `json:"milestones"`
}

// UpdateChallengeRequest carries a partial challenge update.
type UpdateChallengeRequest struct {
	Title    *string `json:"title"`
	Progress *int    `json:"progress"`
}

// ChallengeStatusRequest sets the challenge status.
type ChallengeStatusRequest struct {
	Status string `json:"status"`
}

// MilestonesRequest replaces the milestone checklist.
type MilestonesRequest struct {
	Milestones []models.Milestone `json:"milestones"`
}

// ActivityRequest appends an activity entry.
type ActivityRequest struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Metadata    string `json:"metadata"`
}

// CreateSkillRequest is the request body for creating a skill.
type CreateSkillRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Triggers     []string         `json:"triggers"`
	Instructions string           `json:"instructions"`
	Meta         models.SkillMeta `json:"meta"`
}

// CreateSessionRequest registers a chat session.
type CreateSessionRequest struct {
	Title   string `json:"title"`
	AgentID string `json:"agent_id"`
}

// UpdateSessionRequest carries a partial session update.
type UpdateSessionRequest struct {
	Title        *string `json:"title"`
	MessageCount *int    `json:"message_count"`
}

// ContractTermsRequest replaces the terms list of an unsigned contract.
type ContractTermsRequest struct {
	Terms []string `json:"terms"`
}

// ListResponse wraps list endpoints with a total count.
type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// AssetUploadResponse is returned after a successful asset upload.
type AssetUploadResponse struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}
