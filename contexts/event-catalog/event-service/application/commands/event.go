package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "galavote/contexts/event-catalog/event-service/application"
	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
	"galavote/contexts/event-catalog/event-service/domain/services"
	"galavote/contexts/event-catalog/event-service/ports"
)

// CreateEventCommand is the write-model input for event creation.
type CreateEventCommand struct {
	OwnerUserID string
	Title       string
	Description string
	IsPublic    bool
	RevealAt    *time.Time
}

// EventUseCase orchestrates the organizer-facing catalog commands: creation
// under quota, the moderation ladder, and cascade deletion.
type EventUseCase struct {
	Events  ports.EventRepository
	Billing ports.BillingReader
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc EventUseCase) CreateEvent(ctx context.Context, cmd CreateEventCommand) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	owner := strings.TrimSpace(cmd.OwnerUserID)
	title := strings.TrimSpace(cmd.Title)
	logger.Info("event create processing started",
		"event", "catalog_event_create_started",
		"module", "event-catalog/event-service",
		"layer", "application",
		"owner_user_id", owner,
	)
	if owner == "" || title == "" {
		return entities.Event{}, domainerrors.ErrInvalidEventInput
	}

	account, err := uc.Billing.GetBillingAccount(ctx, owner)
	if err != nil {
		return entities.Event{}, err
	}
	plan := services.PlanForAccount(account)

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Event{}, err
	}
	now := uc.now()
	event := entities.Event{
		EventID:     eventID,
		Slug:        slugify(title),
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Status:      entities.EventStatusDraft,
		IsPublic:    cmd.IsPublic,
		RevealAt:    normalizeRevealAt(cmd.RevealAt),
		OwnerUserID: owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The repository re-counts inside the insert transaction; the plan is
	// re-derived above on every attempt, never cached.
	err = uc.Events.CreateEvent(ctx, event, plan.EventQuota, plan.Name)
	if err == domainerrors.ErrSlugTaken {
		event.Slug = event.Slug + "-" + shortSuffix(eventID)
		err = uc.Events.CreateEvent(ctx, event, plan.EventQuota, plan.Name)
	}
	if err != nil {
		if qerr, ok := err.(*domainerrors.QuotaExceededError); ok {
			logger.Info("event create denied by quota",
				"event", "catalog_event_quota_denied",
				"module", "event-catalog/event-service",
				"layer", "application",
				"owner_user_id", owner,
				"current_count", qerr.CurrentCount,
				"quota", qerr.Quota,
				"plan", qerr.PlanName,
			)
		}
		return entities.Event{}, err
	}

	logger.Info("event created",
		"event", "catalog_event_created",
		"module", "event-catalog/event-service",
		"layer", "application",
		"event_id", event.EventID,
		"slug", event.Slug,
		"owner_user_id", owner,
		"plan", plan.Name,
	)
	return event, nil
}

// SubmitForReview moves a draft into the moderation queue. Owner-only.
func (uc EventUseCase) SubmitForReview(ctx context.Context, eventID string, actorUserID string) (entities.Event, error) {
	return uc.transition(ctx, eventID, actorUserID, entities.EventStatusPending, true)
}

// Publish approves a pending event. The moderation collaborator calls this;
// ownership is not required.
func (uc EventUseCase) Publish(ctx context.Context, eventID string) (entities.Event, error) {
	return uc.transition(ctx, eventID, "", entities.EventStatusPublished, false)
}

func (uc EventUseCase) transition(
	ctx context.Context,
	eventID string,
	actorUserID string,
	next entities.EventStatus,
	requireOwner bool,
) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	event, err := uc.Events.GetEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return entities.Event{}, err
	}
	if requireOwner && !strings.EqualFold(event.OwnerUserID, strings.TrimSpace(actorUserID)) {
		return entities.Event{}, domainerrors.ErrNotOwner
	}
	if !event.CanTransitionTo(next) {
		logger.Warn("event transition rejected",
			"event", "catalog_event_transition_rejected",
			"module", "event-catalog/event-service",
			"layer", "application",
			"event_id", event.EventID,
			"from", string(event.Status),
			"to", string(next),
		)
		return entities.Event{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	if err := uc.Events.UpdateEventStatus(ctx, event.EventID, next, now); err != nil {
		return entities.Event{}, err
	}
	event.Status = next
	event.UpdatedAt = now
	logger.Info("event status changed",
		"event", "catalog_event_status_changed",
		"module", "event-catalog/event-service",
		"layer", "application",
		"event_id", event.EventID,
		"status", string(next),
	)
	return event, nil
}

// DeleteEvent removes the event and cascades polls, options, ballots, and
// selections. Participants are reusable across events and survive.
func (uc EventUseCase) DeleteEvent(ctx context.Context, eventID string, actorUserID string) error {
	logger := application.ResolveLogger(uc.Logger)
	event, err := uc.Events.GetEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return err
	}
	if !strings.EqualFold(event.OwnerUserID, strings.TrimSpace(actorUserID)) {
		return domainerrors.ErrNotOwner
	}
	if err := uc.Events.DeleteEventCascade(ctx, event.EventID); err != nil {
		return err
	}
	logger.Info("event deleted",
		"event", "catalog_event_deleted",
		"module", "event-catalog/event-service",
		"layer", "application",
		"event_id", event.EventID,
	)
	return nil
}

func (uc EventUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func normalizeRevealAt(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

// slugify lowercases and hyphenates a title into a human-routable slug.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "event"
	}
	return slug
}

func shortSuffix(id string) string {
	cleaned := strings.ReplaceAll(id, "-", "")
	if len(cleaned) > 8 {
		cleaned = cleaned[:8]
	}
	return cleaned
}
