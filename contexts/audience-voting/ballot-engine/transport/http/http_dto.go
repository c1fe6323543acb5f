package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitBallotRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type BallotResponse struct {
	BallotID  string   `json:"ballot_id"`
	PollID    string   `json:"poll_id"`
	OptionIDs []string `json:"option_ids"`
	CreatedAt string   `json:"created_at"`
}

type VoterStateResponse struct {
	PollID        string   `json:"poll_id"`
	Title         string   `json:"title"`
	VotingType    string   `json:"voting_type"`
	MaxSelections int      `json:"max_selections,omitempty"`
	StartAt       string   `json:"start_at"`
	EndAt         string   `json:"end_at"`
	Published     bool     `json:"published"`
	Options       []Option `json:"options"`
	HasVoted      bool     `json:"has_voted"`
	OptionIDsCast []string `json:"option_ids_cast,omitempty"`
}

type Option struct {
	OptionID string `json:"option_id"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle,omitempty"`
	Position int    `json:"position"`
}

type OptionTally struct {
	OptionID   string  `json:"option_id"`
	Name       string  `json:"name"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type PollResultsResponse struct {
	PollID       string        `json:"poll_id"`
	TotalBallots int           `json:"total_ballots"`
	Tallies      []OptionTally `json:"tallies"`
}

type EventResultsResponse struct {
	EventID     string                `json:"event_id"`
	RevealState string                `json:"reveal_state"`
	Polls       []PollResultsResponse `json:"polls"`
}
