package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "galavote/contexts/audience-voting/ballot-engine/application"
	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	domainerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
	"galavote/contexts/audience-voting/ballot-engine/ports"
)

// SubmitBallotCommand is the write-model input for ballot submission.
type SubmitBallotCommand struct {
	PollID            string
	Identity          entities.VoterIdentity
	SelectedOptionIDs []string
}

// SubmitBallotResult returns the recorded ballot. Duplicate submissions do
// not reach this path; they surface as ErrDuplicateBallot so the transport
// can answer with the voter's prior ballot.
type SubmitBallotResult struct {
	Ballot entities.Ballot
}

// BallotUseCase orchestrates ballot submission: identity requirement, window
// and publication checks, option ownership, cardinality, then one atomic
// ledger insert. Uniqueness is resolved by the repository's constraint, never
// by a check-then-insert.
type BallotUseCase struct {
	Ballots ports.BallotRepository
	Catalog ports.CatalogReader
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc BallotUseCase) SubmitBallot(ctx context.Context, cmd SubmitBallotCommand) (SubmitBallotResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pollID := strings.TrimSpace(cmd.PollID)
	logger.Info("ballot submit processing started",
		"event", "ballot_submit_started",
		"module", "audience-voting/ballot-engine",
		"layer", "application",
		"poll_id", pollID,
		"selection_count", len(cmd.SelectedOptionIDs),
	)

	if strings.TrimSpace(cmd.Identity.VoterToken) == "" {
		logger.Warn("ballot submit without voter token",
			"event", "ballot_submit_identity_missing",
			"module", "audience-voting/ballot-engine",
			"layer", "application",
			"poll_id", pollID,
		)
		return SubmitBallotResult{}, domainerrors.ErrVoterTokenMissing
	}
	if pollID == "" {
		return SubmitBallotResult{}, domainerrors.ErrPollNotFound
	}

	now := uc.now()
	poll, err := uc.Catalog.GetPoll(ctx, pollID)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	if err := checkPollOpen(poll, now); err != nil {
		logger.Warn("ballot submit rejected by poll window",
			"event", "ballot_submit_poll_closed",
			"module", "audience-voting/ballot-engine",
			"layer", "application",
			"poll_id", pollID,
			"published", poll.Published,
		)
		return SubmitBallotResult{}, err
	}

	selection, err := normalizeSelection(cmd.SelectedOptionIDs)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	options, err := uc.Catalog.ListOptionsByPoll(ctx, pollID)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	if err := validateSelection(poll, options, selection); err != nil {
		logger.Warn("ballot submit validation failed",
			"event", "ballot_submit_validation_failed",
			"module", "audience-voting/ballot-engine",
			"layer", "application",
			"poll_id", pollID,
			"selection_count", len(selection),
			"error", err.Error(),
		)
		return SubmitBallotResult{}, err
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitBallotResult{}, err
	}
	ballot := entities.Ballot{
		BallotID:          ballotID,
		PollID:            pollID,
		VoterToken:        cmd.Identity.VoterToken,
		UserID:            cmd.Identity.UserID,
		SelectedOptionIDs: selection,
		CreatedAt:         now,
	}
	if err := uc.Ballots.InsertBallot(ctx, ballot); err != nil {
		if err == domainerrors.ErrDuplicateBallot {
			logger.Info("ballot submit resolved as duplicate",
				"event", "ballot_submit_duplicate",
				"module", "audience-voting/ballot-engine",
				"layer", "application",
				"poll_id", pollID,
			)
		}
		return SubmitBallotResult{}, err
	}

	logger.Info("ballot recorded",
		"event", "ballot_recorded",
		"module", "audience-voting/ballot-engine",
		"layer", "application",
		"ballot_id", ballot.BallotID,
		"poll_id", ballot.PollID,
		"selection_count", len(ballot.SelectedOptionIDs),
		"authenticated", ballot.UserID != "",
	)
	return SubmitBallotResult{Ballot: ballot}, nil
}

func (uc BallotUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func checkPollOpen(poll ports.PollProjection, now time.Time) error {
	if !poll.Published {
		return domainerrors.ErrPollClosed
	}
	if now.Before(poll.StartAt.UTC()) {
		return domainerrors.ErrPollClosed
	}
	if !poll.EndAt.IsZero() && now.After(poll.EndAt.UTC()) {
		return domainerrors.ErrPollClosed
	}
	return nil
}

// normalizeSelection trims ids and rejects empty or duplicated entries before
// any ownership or cardinality check.
func normalizeSelection(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, domainerrors.ErrInvalidSelectionCount
	}
	seen := make(map[string]struct{}, len(raw))
	selection := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, domainerrors.ErrInvalidOption
		}
		if _, dup := seen[id]; dup {
			return nil, domainerrors.ErrInvalidSelectionCount
		}
		seen[id] = struct{}{}
		selection = append(selection, id)
	}
	return selection, nil
}

func validateSelection(poll ports.PollProjection, options []ports.OptionProjection, selection []string) error {
	valid := make(map[string]struct{}, len(options))
	for _, option := range options {
		valid[option.OptionID] = struct{}{}
	}
	for _, id := range selection {
		if _, ok := valid[id]; !ok {
			return domainerrors.ErrInvalidOption
		}
	}

	switch poll.VotingType {
	case entities.VotingTypeSingle:
		if len(selection) != 1 {
			return domainerrors.ErrInvalidSelectionCount
		}
	case entities.VotingTypeMulti:
		if poll.MaxSelections > 0 && len(selection) > poll.MaxSelections {
			return domainerrors.ErrInvalidSelectionCount
		}
	default:
		return domainerrors.ErrInvalidSelectionCount
	}
	return nil
}
