package commands

import (
	"context"
	"strings"
	"time"

	application "galavote/contexts/event-catalog/event-service/application"
	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
)

// PollOptionInput names a nominee for one option; a participant row is
// created on the fly for each.
type PollOptionInput struct {
	ParticipantName string
	Subtitle        string
}

// CreatePollCommand is the simplified creation path: one call builds the
// poll, its participants, and its options in input order.
type CreatePollCommand struct {
	EventID       string
	ActorUserID   string
	Title         string
	VotingType    entities.VotingType
	MaxSelections int
	StartAt       time.Time
	EndAt         time.Time
	Options       []PollOptionInput
}

func (uc EventUseCase) CreatePollWithOptions(ctx context.Context, cmd CreatePollCommand) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)
	title := strings.TrimSpace(cmd.Title)
	if title == "" || len(cmd.Options) < 2 {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if cmd.VotingType != entities.VotingTypeSingle && cmd.VotingType != entities.VotingTypeMulti {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if cmd.MaxSelections < 0 || (cmd.VotingType == entities.VotingTypeSingle && cmd.MaxSelections > 1) {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if !cmd.EndAt.IsZero() && !cmd.StartAt.IsZero() && cmd.EndAt.Before(cmd.StartAt) {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}

	event, err := uc.Events.GetEvent(ctx, strings.TrimSpace(cmd.EventID))
	if err != nil {
		return entities.Poll{}, err
	}
	if !strings.EqualFold(event.OwnerUserID, strings.TrimSpace(cmd.ActorUserID)) {
		return entities.Poll{}, domainerrors.ErrNotOwner
	}

	position, err := uc.Events.NextPollPosition(ctx, event.EventID)
	if err != nil {
		return entities.Poll{}, err
	}

	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Poll{}, err
	}
	now := uc.now()
	poll := entities.Poll{
		PollID:        pollID,
		EventID:       event.EventID,
		Title:         title,
		Position:      position,
		VotingType:    cmd.VotingType,
		MaxSelections: cmd.MaxSelections,
		StartAt:       cmd.StartAt.UTC(),
		EndAt:         cmd.EndAt.UTC(),
		Published:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	participants := make([]entities.Participant, 0, len(cmd.Options))
	options := make([]entities.Option, 0, len(cmd.Options))
	for index, input := range cmd.Options {
		name := strings.TrimSpace(input.ParticipantName)
		if name == "" {
			return entities.Poll{}, domainerrors.ErrInvalidPollInput
		}
		participantID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Poll{}, err
		}
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Poll{}, err
		}
		participants = append(participants, entities.Participant{
			ParticipantID: participantID,
			Name:          name,
		})
		options = append(options, entities.Option{
			OptionID:      optionID,
			PollID:        poll.PollID,
			Position:      index,
			ParticipantID: participantID,
			Subtitle:      strings.TrimSpace(input.Subtitle),
		})
	}

	if err := uc.Events.CreatePollWithOptions(ctx, poll, participants, options); err != nil {
		return entities.Poll{}, err
	}

	logger.Info("poll created",
		"event", "catalog_poll_created",
		"module", "event-catalog/event-service",
		"layer", "application",
		"poll_id", poll.PollID,
		"event_id", poll.EventID,
		"position", poll.Position,
		"voting_type", string(poll.VotingType),
		"option_count", len(options),
	)
	return poll, nil
}

// PublishPoll opens a poll for voting once its window allows.
func (uc EventUseCase) PublishPoll(ctx context.Context, pollID string, actorUserID string) error {
	poll, err := uc.Events.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return err
	}
	event, err := uc.Events.GetEvent(ctx, poll.EventID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(event.OwnerUserID, strings.TrimSpace(actorUserID)) {
		return domainerrors.ErrNotOwner
	}
	return uc.Events.PublishPoll(ctx, poll.PollID, uc.now())
}
