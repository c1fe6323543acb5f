package ports

import (
	"context"
	"time"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
)

// BallotRepository is the vote ledger. InsertBallot must write the ballot row
// and its selection rows as one atomic unit, with uniqueness on
// (poll_id, voter_token) resolved by the storage layer itself; a losing
// concurrent insert returns ErrDuplicateBallot, never a partial ballot.
type BallotRepository interface {
	InsertBallot(ctx context.Context, ballot entities.Ballot) error
	GetBallotByVoter(ctx context.Context, pollID string, voterToken string) (entities.Ballot, bool, error)
	ListBallotsByPoll(ctx context.Context, pollID string) ([]entities.Ballot, error)
}

// PollProjection is the ballot engine's read model over the event-catalog
// poll table.
type PollProjection struct {
	PollID        string
	EventID       string
	Title         string
	Position      int
	VotingType    entities.VotingType
	MaxSelections int
	StartAt       time.Time
	EndAt         time.Time
	Published     bool
}

type OptionProjection struct {
	OptionID string
	PollID   string
	Position int
	Name     string
	Subtitle string
}

type EventProjection struct {
	EventID  string
	Slug     string
	Title    string
	Status   string
	IsPublic bool
	RevealAt *time.Time
}

// CatalogReader supplies event/poll/option read models owned by the
// event-catalog context.
type CatalogReader interface {
	GetPoll(ctx context.Context, pollID string) (PollProjection, error)
	ListOptionsByPoll(ctx context.Context, pollID string) ([]OptionProjection, error)
	GetEvent(ctx context.Context, eventID string) (EventProjection, error)
	ListPollsByEvent(ctx context.Context, eventID string) ([]PollProjection, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
