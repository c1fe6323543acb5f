package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"galavote/contexts/event-catalog/event-service/application/commands"
	"galavote/contexts/event-catalog/event-service/application/queries"
	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
	httptransport "galavote/contexts/event-catalog/event-service/transport/http"
)

type Handler struct {
	Events  commands.EventUseCase
	Catalog queries.CatalogUseCase
	Logger  *slog.Logger
}

func (h Handler) CreateEventHandler(
	ctx context.Context,
	ownerUserID string,
	req httptransport.CreateEventRequest,
) (httptransport.EventResponse, error) {
	revealAt, err := parseOptionalTime(req.RevealAt)
	if err != nil {
		return httptransport.EventResponse{}, domainerrors.ErrInvalidEventInput
	}
	event, err := h.Events.CreateEvent(ctx, commands.CreateEventCommand{
		OwnerUserID: ownerUserID,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		RevealAt:    revealAt,
	})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) SubmitEventHandler(ctx context.Context, eventID string, actorUserID string) (httptransport.EventResponse, error) {
	event, err := h.Events.SubmitForReview(ctx, eventID, actorUserID)
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) PublishEventHandler(ctx context.Context, eventID string) (httptransport.EventResponse, error) {
	event, err := h.Events.Publish(ctx, eventID)
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) DeleteEventHandler(ctx context.Context, eventID string, actorUserID string) error {
	return h.Events.DeleteEvent(ctx, eventID, actorUserID)
}

func (h Handler) EventBySlugHandler(ctx context.Context, slug string) (httptransport.EventDetailResponse, error) {
	detail, err := h.Catalog.EventBySlug(ctx, slug)
	if err != nil {
		return httptransport.EventDetailResponse{}, err
	}
	resp := httptransport.EventDetailResponse{
		Event: mapEvent(detail.Event),
		Polls: make([]httptransport.PollResponse, 0, len(detail.Polls)),
	}
	for _, poll := range detail.Polls {
		resp.Polls = append(resp.Polls, mapPoll(poll))
	}
	return resp, nil
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	eventID string,
	actorUserID string,
	req httptransport.CreatePollRequest,
) (httptransport.PollResponse, error) {
	startAt, err := parseOptionalTime(req.StartAt)
	if err != nil {
		return httptransport.PollResponse{}, domainerrors.ErrInvalidPollInput
	}
	endAt, err := parseOptionalTime(req.EndAt)
	if err != nil {
		return httptransport.PollResponse{}, domainerrors.ErrInvalidPollInput
	}

	options := make([]commands.PollOptionInput, 0, len(req.Options))
	for _, option := range req.Options {
		options = append(options, commands.PollOptionInput{
			ParticipantName: option.ParticipantName,
			Subtitle:        option.Subtitle,
		})
	}
	poll, err := h.Events.CreatePollWithOptions(ctx, commands.CreatePollCommand{
		EventID:       eventID,
		ActorUserID:   actorUserID,
		Title:         req.Title,
		VotingType:    entities.VotingType(req.VotingType),
		MaxSelections: req.MaxSelections,
		StartAt:       timeOrZero(startAt),
		EndAt:         timeOrZero(endAt),
		Options:       options,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) PublishPollHandler(ctx context.Context, pollID string, actorUserID string) error {
	return h.Events.PublishPoll(ctx, pollID, actorUserID)
}

func (h Handler) ListEventsHandler(ctx context.Context, ownerUserID string) ([]httptransport.EventResponse, error) {
	events, err := h.Catalog.ListEventsByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	resp := make([]httptransport.EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, mapEvent(event))
	}
	return resp, nil
}

func mapEvent(event entities.Event) httptransport.EventResponse {
	resp := httptransport.EventResponse{
		EventID:     event.EventID,
		Slug:        event.Slug,
		Title:       event.Title,
		Description: event.Description,
		Status:      string(event.Status),
		IsPublic:    event.IsPublic,
		OwnerUserID: event.OwnerUserID,
		CreatedAt:   event.CreatedAt.UTC().Format(time.RFC3339),
	}
	if event.RevealAt != nil {
		resp.RevealAt = event.RevealAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapPoll(poll entities.Poll) httptransport.PollResponse {
	resp := httptransport.PollResponse{
		PollID:        poll.PollID,
		EventID:       poll.EventID,
		Title:         poll.Title,
		Position:      poll.Position,
		VotingType:    string(poll.VotingType),
		MaxSelections: poll.MaxSelections,
		Published:     poll.Published,
	}
	if !poll.StartAt.IsZero() {
		resp.StartAt = poll.StartAt.UTC().Format(time.RFC3339)
	}
	if !poll.EndAt.IsZero() {
		resp.EndAt = poll.EndAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	normalized := parsed.UTC()
	return &normalized, nil
}

func timeOrZero(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}
