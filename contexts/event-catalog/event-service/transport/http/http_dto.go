package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type QuotaDeniedResponse struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	CurrentCount int    `json:"current_count"`
	Quota        int    `json:"quota"`
	Plan         string `json:"plan"`
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
	RevealAt    string `json:"reveal_at,omitempty"`
}

type EventResponse struct {
	EventID     string `json:"event_id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	IsPublic    bool   `json:"is_public"`
	RevealAt    string `json:"reveal_at,omitempty"`
	OwnerUserID string `json:"owner_user_id"`
	CreatedAt   string `json:"created_at"`
}

type EventDetailResponse struct {
	Event EventResponse  `json:"event"`
	Polls []PollResponse `json:"polls"`
}

type CreatePollRequest struct {
	Title         string              `json:"title"`
	VotingType    string              `json:"voting_type"`
	MaxSelections int                 `json:"max_selections,omitempty"`
	StartAt       string              `json:"start_at,omitempty"`
	EndAt         string              `json:"end_at,omitempty"`
	Options       []PollOptionRequest `json:"options"`
}

type PollOptionRequest struct {
	ParticipantName string `json:"participant_name"`
	Subtitle        string `json:"subtitle,omitempty"`
}

type PollResponse struct {
	PollID        string `json:"poll_id"`
	EventID       string `json:"event_id"`
	Title         string `json:"title"`
	Position      int    `json:"position"`
	VotingType    string `json:"voting_type"`
	MaxSelections int    `json:"max_selections,omitempty"`
	StartAt       string `json:"start_at,omitempty"`
	EndAt         string `json:"end_at,omitempty"`
	Published     bool   `json:"published"`
}
