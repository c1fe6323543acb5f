package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"galavote/contexts/event-catalog/event-service/adapters/memory"
	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
)

func TestEventBySlugReturnsOrderedPolls(t *testing.T) {
	store := memory.NewStore()
	seedEvent(t, store, "event-1", "gala-night", "user-1")
	seedPoll(t, store, "poll-b", "event-1", 1)
	seedPoll(t, store, "poll-a", "event-1", 0)
	seedPoll(t, store, "poll-c", "event-1", 2)

	useCase := CatalogUseCase{Events: store}
	detail, err := useCase.EventBySlug(context.Background(), "gala-night")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if detail.Event.EventID != "event-1" {
		t.Fatalf("unexpected event: %+v", detail.Event)
	}
	for i, want := range []string{"poll-a", "poll-b", "poll-c"} {
		if detail.Polls[i].PollID != want {
			t.Fatalf("polls out of order at %d: expected %s, got %s", i, want, detail.Polls[i].PollID)
		}
	}
}

func TestEventBySlugUnknown(t *testing.T) {
	useCase := CatalogUseCase{Events: memory.NewStore()}

	_, err := useCase.EventBySlug(context.Background(), "nope")
	if !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestNextPollNavigation(t *testing.T) {
	store := memory.NewStore()
	seedEvent(t, store, "event-1", "gala-night", "user-1")
	seedPoll(t, store, "poll-a", "event-1", 0)
	seedPoll(t, store, "poll-b", "event-1", 1)

	useCase := CatalogUseCase{Events: store}

	next, err := useCase.NextPoll(context.Background(), "event-1", 0)
	if err != nil {
		t.Fatalf("next poll failed: %v", err)
	}
	if next.PollID != "poll-b" {
		t.Fatalf("expected poll-b after position 0, got %s", next.PollID)
	}

	if _, err := useCase.NextPoll(context.Background(), "event-1", 1); !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound past the last poll, got %v", err)
	}
}

func seedEvent(t *testing.T, store *memory.Store, eventID, slug, owner string) {
	t.Helper()
	err := store.CreateEvent(context.Background(), entities.Event{
		EventID:     eventID,
		Slug:        slug,
		Title:       "Gala",
		Status:      entities.EventStatusPublished,
		OwnerUserID: owner,
		CreatedAt:   time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC),
	}, 100, "pro")
	if err != nil {
		t.Fatalf("seed event failed: %v", err)
	}
}

func seedPoll(t *testing.T, store *memory.Store, pollID, eventID string, position int) {
	t.Helper()
	err := store.CreatePollWithOptions(context.Background(), entities.Poll{
		PollID:     pollID,
		EventID:    eventID,
		Title:      "Poll",
		Position:   position,
		VotingType: entities.VotingTypeSingle,
	}, nil, nil)
	if err != nil {
		t.Fatalf("seed poll failed: %v", err)
	}
}
