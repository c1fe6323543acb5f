package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"galavote/contexts/audience-voting/ballot-engine/application"
	"galavote/contexts/audience-voting/ballot-engine/application/commands"
	"galavote/contexts/audience-voting/ballot-engine/application/queries"
	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	httptransport "galavote/contexts/audience-voting/ballot-engine/transport/http"
)

// Handler is the transport-agnostic adapter: it maps DTOs onto use cases and
// back. Wire formats and status codes stay in the platform HTTP server.
type Handler struct {
	Ballots commands.BallotUseCase
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

func (h Handler) SubmitBallotHandler(
	ctx context.Context,
	pollID string,
	voterToken string,
	userID string,
	req httptransport.SubmitBallotRequest,
) (httptransport.BallotResponse, error) {
	identity, err := application.ResolveVoterIdentity(voterToken, userID)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	result, err := h.Ballots.SubmitBallot(ctx, commands.SubmitBallotCommand{
		PollID:            pollID,
		Identity:          identity,
		SelectedOptionIDs: req.OptionIDs,
	})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return httptransport.BallotResponse{
		BallotID:  result.Ballot.BallotID,
		PollID:    result.Ballot.PollID,
		OptionIDs: result.Ballot.SelectedOptionIDs,
		CreatedAt: result.Ballot.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) VoterStateHandler(
	ctx context.Context,
	pollID string,
	voterToken string,
	userID string,
) (httptransport.VoterStateResponse, error) {
	identity, err := application.ResolveVoterIdentity(voterToken, userID)
	if err != nil {
		return httptransport.VoterStateResponse{}, err
	}
	poll, err := h.Results.Catalog.GetPoll(ctx, pollID)
	if err != nil {
		return httptransport.VoterStateResponse{}, err
	}
	options, err := h.Results.Catalog.ListOptionsByPoll(ctx, pollID)
	if err != nil {
		return httptransport.VoterStateResponse{}, err
	}
	state, err := h.Results.VoterState(ctx, pollID, identity)
	if err != nil {
		return httptransport.VoterStateResponse{}, err
	}

	resp := httptransport.VoterStateResponse{
		PollID:        poll.PollID,
		Title:         poll.Title,
		VotingType:    string(poll.VotingType),
		MaxSelections: poll.MaxSelections,
		StartAt:       poll.StartAt.UTC().Format(time.RFC3339),
		EndAt:         poll.EndAt.UTC().Format(time.RFC3339),
		Published:     poll.Published,
		HasVoted:      state.HasVoted,
		OptionIDsCast: state.SelectedOptionIDs,
		Options:       make([]httptransport.Option, 0, len(options)),
	}
	for _, option := range options {
		resp.Options = append(resp.Options, httptransport.Option{
			OptionID: option.OptionID,
			Name:     option.Name,
			Subtitle: option.Subtitle,
			Position: option.Position,
		})
	}
	return resp, nil
}

func (h Handler) PollResultsHandler(ctx context.Context, pollID string) (httptransport.PollResultsResponse, error) {
	result, err := h.Results.PollResults(ctx, pollID)
	if err != nil {
		return httptransport.PollResultsResponse{}, err
	}
	return mapPollResults(result), nil
}

func (h Handler) EventResultsHandler(ctx context.Context, eventID string) (httptransport.EventResultsResponse, error) {
	result, err := h.Results.EventResults(ctx, eventID)
	if err != nil {
		return httptransport.EventResultsResponse{}, err
	}
	resp := httptransport.EventResultsResponse{
		EventID:     result.EventID,
		RevealState: string(result.RevealState),
		Polls:       make([]httptransport.PollResultsResponse, 0, len(result.Polls)),
	}
	for _, poll := range result.Polls {
		resp.Polls = append(resp.Polls, mapPollResults(poll))
	}
	return resp, nil
}

func mapPollResults(result entities.PollResult) httptransport.PollResultsResponse {
	resp := httptransport.PollResultsResponse{
		PollID:       result.PollID,
		TotalBallots: result.TotalBallots,
		Tallies:      make([]httptransport.OptionTally, 0, len(result.Tallies)),
	}
	for _, tally := range result.Tallies {
		resp.Tallies = append(resp.Tallies, httptransport.OptionTally{
			OptionID:   tally.OptionID,
			Name:       tally.Name,
			VoteCount:  tally.VoteCount,
			Percentage: tally.Percentage,
		})
	}
	return resp
}
