package entities

import "time"

type VotingType string

const (
	VotingTypeSingle VotingType = "single"
	VotingTypeMulti  VotingType = "multi"
)

// VoterIdentity is the resolved dual identity of a request. VoterToken is the
// durable per-browser token and the sole uniqueness key; UserID is attached
// for attribution only and never substitutes for the token.
type VoterIdentity struct {
	VoterToken string
	UserID     string
}

func (v VoterIdentity) Fingerprint() string {
	return v.VoterToken
}

// Ballot is one accepted vote action: the full selected-option set recorded
// atomically for a (poll, voter token) pair.
type Ballot struct {
	BallotID          string
	PollID            string
	VoterToken        string
	UserID            string
	SelectedOptionIDs []string
	CreatedAt         time.Time
}

type RevealState string

const (
	RevealStateHidden   RevealState = "hidden"
	RevealStateRevealed RevealState = "revealed"
)

type OptionTally struct {
	OptionID   string
	Name       string
	Position   int
	VoteCount  int
	Percentage float64
}

type PollResult struct {
	PollID       string
	TotalBallots int
	Tallies      []OptionTally
}

type EventResult struct {
	EventID     string
	RevealState RevealState
	Polls       []PollResult
}

// VoterState is a voter's read-only view of a poll: whether this token has
// already voted and, if so, the previously submitted selection.
type VoterState struct {
	PollID            string
	HasVoted          bool
	SelectedOptionIDs []string
}
