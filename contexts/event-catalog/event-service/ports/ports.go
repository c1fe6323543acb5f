package ports

import (
	"context"
	"time"

	"galavote/contexts/event-catalog/event-service/domain/entities"
)

// EventRepository owns the catalog tables. CreateEvent must perform the quota
// re-count and the insert inside one transaction so two concurrent creations
// at the last free slot resolve to exactly one success; the loser receives a
// QuotaExceededError built from the in-transaction count.
type EventRepository interface {
	CreateEvent(ctx context.Context, event entities.Event, quota int, planName string) error
	GetEvent(ctx context.Context, eventID string) (entities.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (entities.Event, error)
	ListEventsByOwner(ctx context.Context, ownerUserID string) ([]entities.Event, error)
	UpdateEventStatus(ctx context.Context, eventID string, status entities.EventStatus, updatedAt time.Time) error
	DeleteEventCascade(ctx context.Context, eventID string) error

	CreatePollWithOptions(ctx context.Context, poll entities.Poll, participants []entities.Participant, options []entities.Option) error
	GetPoll(ctx context.Context, pollID string) (entities.Poll, error)
	ListPollsByEvent(ctx context.Context, eventID string) ([]entities.Poll, error)
	NextPollPosition(ctx context.Context, eventID string) (int, error)
	PublishPoll(ctx context.Context, pollID string, updatedAt time.Time) error
	ListOptionsByPoll(ctx context.Context, pollID string) ([]entities.Option, error)
}

// BillingReader is the external billing subsystem boundary; the quota check
// only ever reads subscription fields through it.
type BillingReader interface {
	GetBillingAccount(ctx context.Context, userID string) (entities.BillingAccount, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
