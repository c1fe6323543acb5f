package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	application "galavote/contexts/audience-voting/ballot-engine/application"
	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	domainerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
	"galavote/contexts/audience-voting/ballot-engine/domain/services"
	"galavote/contexts/audience-voting/ballot-engine/ports"
)

// ResultsUseCase serves reveal-gated tallies and voter state. Tallies are
// recomputed from the ledger on every call; no denormalized counter is the
// source of truth.
type ResultsUseCase struct {
	Ballots ports.BallotRepository
	Catalog ports.CatalogReader
	Clock   ports.Clock
	Logger  *slog.Logger
}

// PollResults computes the ranked tally for one poll. The reveal gate of the
// owning event applies even to zero-ballot polls and even after the voting
// window closed; voting closure and reveal are independent timers.
func (uc ResultsUseCase) PollResults(ctx context.Context, pollID string) (entities.PollResult, error) {
	poll, err := uc.Catalog.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.PollResult{}, err
	}
	event, err := uc.Catalog.GetEvent(ctx, poll.EventID)
	if err != nil {
		return entities.PollResult{}, err
	}
	if services.RevealStateAt(event.RevealAt, uc.now()) == entities.RevealStateHidden {
		uc.logHidden(poll.EventID, poll.PollID)
		return entities.PollResult{}, domainerrors.ErrResultsHidden
	}
	return uc.computePoll(ctx, poll)
}

// EventResults concatenates per-poll results in poll position order.
func (uc ResultsUseCase) EventResults(ctx context.Context, eventID string) (entities.EventResult, error) {
	event, err := uc.Catalog.GetEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return entities.EventResult{}, err
	}
	if services.RevealStateAt(event.RevealAt, uc.now()) == entities.RevealStateHidden {
		uc.logHidden(event.EventID, "")
		return entities.EventResult{}, domainerrors.ErrResultsHidden
	}

	polls, err := uc.Catalog.ListPollsByEvent(ctx, event.EventID)
	if err != nil {
		return entities.EventResult{}, err
	}
	sort.SliceStable(polls, func(i, j int) bool {
		return polls[i].Position < polls[j].Position
	})

	result := entities.EventResult{
		EventID:     event.EventID,
		RevealState: entities.RevealStateRevealed,
		Polls:       make([]entities.PollResult, 0, len(polls)),
	}
	for _, poll := range polls {
		pollResult, err := uc.computePoll(ctx, poll)
		if err != nil {
			return entities.EventResult{}, err
		}
		result.Polls = append(result.Polls, pollResult)
	}
	return result, nil
}

// VoterState returns the poll read model plus the caller's own prior ballot.
// The read is idempotent: it reflects the submitted selection every time and
// never mutates the ledger.
func (uc ResultsUseCase) VoterState(ctx context.Context, pollID string, identity entities.VoterIdentity) (entities.VoterState, error) {
	if strings.TrimSpace(identity.VoterToken) == "" {
		return entities.VoterState{}, domainerrors.ErrVoterTokenMissing
	}
	poll, err := uc.Catalog.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.VoterState{}, err
	}
	ballot, found, err := uc.Ballots.GetBallotByVoter(ctx, poll.PollID, identity.VoterToken)
	if err != nil {
		return entities.VoterState{}, err
	}
	state := entities.VoterState{PollID: poll.PollID, HasVoted: found}
	if found {
		state.SelectedOptionIDs = append([]string(nil), ballot.SelectedOptionIDs...)
	}
	return state, nil
}

func (uc ResultsUseCase) computePoll(ctx context.Context, poll ports.PollProjection) (entities.PollResult, error) {
	options, err := uc.Catalog.ListOptionsByPoll(ctx, poll.PollID)
	if err != nil {
		return entities.PollResult{}, err
	}
	ballots, err := uc.Ballots.ListBallotsByPoll(ctx, poll.PollID)
	if err != nil {
		return entities.PollResult{}, err
	}

	tallyOptions := make([]services.TallyOption, 0, len(options))
	for _, option := range options {
		tallyOptions = append(tallyOptions, services.TallyOption{
			OptionID: option.OptionID,
			Name:     option.Name,
			Position: option.Position,
		})
	}
	return services.ComputePollResult(poll.PollID, tallyOptions, ballots), nil
}

func (uc ResultsUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc ResultsUseCase) logHidden(eventID string, pollID string) {
	application.ResolveLogger(uc.Logger).Info("results request refused by reveal gate",
		"event", "results_hidden",
		"module", "audience-voting/ballot-engine",
		"layer", "application",
		"event_id", eventID,
		"poll_id", pollID,
	)
}
