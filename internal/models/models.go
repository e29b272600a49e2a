// Package models defines the domain types for Stride.
package models

import (
	"time"

	"github.com/jfenske89/stride/internal/record"
)

// Challenge statuses. Any enum value may be set from any prior state;
// there are no automatic transitions.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ChallengeStatuses is the closed status enum.
var ChallengeStatuses = []string{StatusPending, StatusActive, StatusPaused, StatusCompleted, StatusFailed}

// Activity entry types (closed enum).
const (
	ActivityCheckIn      = "check_in"
	ActivityMilestone    = "milestone"
	ActivityStatusChange = "status_change"
	ActivityNote         = "note"
	ActivitySystem       = "system"
)

// ActivityTypes is the closed activity type enum.
var ActivityTypes = []string{ActivityCheckIn, ActivityMilestone, ActivityStatusChange, ActivityNote, ActivitySystem}

// Profile is one user profile, persisted as profiles/<id>/profile.md.
// The first-created profile is the owner: it cannot be deleted, and only
// it may delete other profiles.
type Profile struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email,omitempty"`
	Owner              bool      `json:"owner"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
}

// Agent is a chat agent. Listings come from the agents.json registry;
// instructions come from the per-agent agent.md / agent.json pair.
type Agent struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Personality  string            `json:"personality,omitempty"`
	Skills       []string          `json:"skills"`
	Capabilities map[string]string `json:"capabilities,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
}

// AgentSummary is the registry mirror of an Agent, used for list views.
type AgentSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// Key implements registry.Keyed.
func (a AgentSummary) Key() string { return a.ID }

// Streak tracks consecutive check-in days for a challenge.
type Streak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Milestone is one entry of the `## Milestones` checklist.
type Milestone = record.ChecklistItem

// Challenge is persisted as challenges/<id>/challenge.md. Status and
// streak live in field lines; milestones in the Milestones section.
type Challenge struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Status      string      `json:"status"`
	Progress    int         `json:"progress"`
	Streak      Streak      `json:"streak"`
	Milestones  []Milestone `json:"milestones"`
	LastCheckIn string      `json:"last_check_in,omitempty"`
}

// ActivityEntry is one reverse-chronological `## ` section of activity.md.
type ActivityEntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Metadata    string    `json:"metadata,omitempty"` // freeform JSON-in-text
}

// Skill is a directory holding SKILL.md plus .skill-meta.json.
type Skill struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category,omitempty"`
	Triggers     []string  `json:"triggers,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	Locked       bool      `json:"locked"`
	Meta         SkillMeta `json:"meta"`
}

// SkillMeta is the sidecar unlock metadata (.skill-meta.json).
type SkillMeta struct {
	Pack      string `json:"pack,omitempty"`
	UnlockDay int    `json:"unlock_day,omitempty"`
}

// VisionBoard is stored as one JSON file per board; no markdown involved.
type VisionBoard struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Images       []string  `json:"images"`
	Goals        []string  `json:"goals"`
	Affirmations []string  `json:"affirmations"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatSession is a chat-sessions.json registry entry. The message
// transcripts themselves are outside this service.
type ChatSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	AgentID      string    `json:"agent_id,omitempty"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Key implements registry.Keyed.
func (s ChatSession) Key() string { return s.ID }

// Resolution is the per-profile resolution.md: a statement plus a goal
// checklist, parsed on every read (no registry mirrors it).
type Resolution struct {
	Statement string                 `json:"statement"`
	Year      int                    `json:"year,omitempty"`
	Goals     []record.ChecklistItem `json:"goals"`
}

// Contract is a commitment contract, contracts/<id>/contract.md.
type Contract struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Stakes   string   `json:"stakes,omitempty"`
	Deadline string   `json:"deadline,omitempty"`
	Signed   bool     `json:"signed"`
	Terms    []string `json:"terms"`
}
