package queries

import (
	"context"
	"sort"
	"strings"

	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
	"galavote/contexts/event-catalog/event-service/ports"
)

// CatalogUseCase serves the read side of the catalog: event detail with
// ordered polls and next-poll navigation.
type CatalogUseCase struct {
	Events ports.EventRepository
}

type EventDetail struct {
	Event entities.Event
	Polls []entities.Poll
}

func (uc CatalogUseCase) EventBySlug(ctx context.Context, slug string) (EventDetail, error) {
	event, err := uc.Events.GetEventBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return EventDetail{}, err
	}
	polls, err := uc.Events.ListPollsByEvent(ctx, event.EventID)
	if err != nil {
		return EventDetail{}, err
	}
	sort.SliceStable(polls, func(i, j int) bool {
		return polls[i].Position < polls[j].Position
	})
	return EventDetail{Event: event, Polls: polls}, nil
}

func (uc CatalogUseCase) ListEventsByOwner(ctx context.Context, ownerUserID string) ([]entities.Event, error) {
	return uc.Events.ListEventsByOwner(ctx, strings.TrimSpace(ownerUserID))
}

func (uc CatalogUseCase) PollOptions(ctx context.Context, pollID string) ([]entities.Option, error) {
	return uc.Events.ListOptionsByPoll(ctx, strings.TrimSpace(pollID))
}

// NextPoll returns the first poll ordered after the given position, for
// "next poll" navigation through an event.
func (uc CatalogUseCase) NextPoll(ctx context.Context, eventID string, afterPosition int) (entities.Poll, error) {
	polls, err := uc.Events.ListPollsByEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return entities.Poll{}, err
	}
	sort.SliceStable(polls, func(i, j int) bool {
		return polls[i].Position < polls[j].Position
	})
	for _, poll := range polls {
		if poll.Position > afterPosition {
			return poll, nil
		}
	}
	return entities.Poll{}, domainerrors.ErrPollNotFound
}
