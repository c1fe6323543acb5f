package entities

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPending   EventStatus = "pending"
	EventStatusPublished EventStatus = "published"
)

type VotingType string

const (
	VotingTypeSingle VotingType = "single"
	VotingTypeMulti  VotingType = "multi"
)

type Event struct {
	EventID     string
	Slug        string
	Title       string
	Description string
	Status      EventStatus
	IsPublic    bool
	RevealAt    *time.Time
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransitionTo encodes the moderation ladder: draft -> pending ->
// published, one step at a time, no way back.
func (e Event) CanTransitionTo(next EventStatus) bool {
	switch e.Status {
	case EventStatusDraft:
		return next == EventStatusPending
	case EventStatusPending:
		return next == EventStatusPublished
	default:
		return false
	}
}

// Poll belongs to exactly one event. Position is the sort key for both
// navigation and result listing.
type Poll struct {
	PollID        string
	EventID       string
	Title         string
	Position      int
	VotingType    VotingType
	MaxSelections int
	StartAt       time.Time
	EndAt         time.Time
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Option references a Participant so the same nominee can appear across
// polls.
type Option struct {
	OptionID      string
	PollID        string
	Position      int
	ParticipantID string
	Subtitle      string
}

type Participant struct {
	ParticipantID string
	Name          string
	ImageURL      string
}

// BillingAccount is the read-side view of the external billing subsystem.
// Plan derivation consumes it; nothing here mutates billing state.
type BillingAccount struct {
	UserID             string
	SubscriptionStatus string
	PriceID            string
}
