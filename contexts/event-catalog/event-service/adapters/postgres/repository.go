package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
	"galavote/contexts/event-catalog/event-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// CreateEvent serializes creations per owner with an advisory lock held for
// the transaction, then re-counts before inserting. Two concurrent requests
// at the last free slot cannot both pass the count.
func (r *Repository) CreateEvent(ctx context.Context, event entities.Event, quota int, planName string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", event.OwnerUserID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&eventModel{}).
			Where("owner_user_id = ?", event.OwnerUserID).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) >= quota {
			return &domainerrors.QuotaExceededError{
				CurrentCount: int(count),
				Quota:        quota,
				PlanName:     planName,
			}
		}

		return tx.Create(eventToModel(event)).Error
	})
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domainerrors.ErrSlugTaken
	}
	var quotaErr *domainerrors.QuotaExceededError
	if errors.As(err, &quotaErr) {
		return quotaErr
	}
	r.logError(ctx, "event_create_failed", err)
	return err
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (entities.Event, error) {
	var model eventModel
	err := r.db.WithContext(ctx).
		Where("id = ?", eventID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Event{}, domainerrors.ErrEventNotFound
	}
	if err != nil {
		r.logError(ctx, "event_get_failed", err)
		return entities.Event{}, err
	}
	return eventFromModel(model), nil
}

func (r *Repository) GetEventBySlug(ctx context.Context, slug string) (entities.Event, error) {
	var model eventModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Event{}, domainerrors.ErrEventNotFound
	}
	if err != nil {
		r.logError(ctx, "event_get_by_slug_failed", err)
		return entities.Event{}, err
	}
	return eventFromModel(model), nil
}

func (r *Repository) ListEventsByOwner(ctx context.Context, ownerUserID string) ([]entities.Event, error) {
	var models []eventModel
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "event_list_by_owner_failed", err)
		return nil, err
	}
	events := make([]entities.Event, 0, len(models))
	for _, model := range models {
		events = append(events, eventFromModel(model))
	}
	return events, nil
}

func (r *Repository) UpdateEventStatus(ctx context.Context, eventID string, status entities.EventStatus, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		r.logError(ctx, "event_update_status_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEventNotFound
	}
	return nil
}

// DeleteEventCascade removes the event and every row hanging off it,
// including the ballot ledger rows the voting side wrote for its polls.
func (r *Repository) DeleteEventCascade(ctx context.Context, eventID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pollIDs []string
		if err := tx.Model(&pollModel{}).
			Where("event_id = ?", eventID).
			Pluck("id", &pollIDs).Error; err != nil {
			return err
		}

		if len(pollIDs) > 0 {
			if err := tx.Exec(
				"DELETE FROM ballot_selections WHERE ballot_id IN (SELECT id FROM ballots WHERE poll_id IN ?)",
				pollIDs,
			).Error; err != nil {
				return err
			}
			if err := tx.Where("poll_id IN ?", pollIDs).Delete(&ballotRowModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("poll_id IN ?", pollIDs).Delete(&optionModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id = ?", eventID).Delete(&pollModel{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", eventID).Delete(&eventModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrEventNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, domainerrors.ErrEventNotFound) {
		r.logError(ctx, "event_delete_cascade_failed", err)
	}
	return err
}

func (r *Repository) CreatePollWithOptions(
	ctx context.Context,
	poll entities.Poll,
	participants []entities.Participant,
	options []entities.Option,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pollToModel(poll)).Error; err != nil {
			return err
		}
		for _, participant := range participants {
			if err := tx.Create(participantToModel(participant)).Error; err != nil {
				return err
			}
		}
		for _, option := range options {
			if err := tx.Create(optionToModel(option)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logError(ctx, "poll_create_failed", err)
	}
	return err
}

func (r *Repository) GetPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	var model pollModel
	err := r.db.WithContext(ctx).
		Where("id = ?", pollID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	if err != nil {
		r.logError(ctx, "poll_get_failed", err)
		return entities.Poll{}, err
	}
	return pollFromModel(model), nil
}

func (r *Repository) ListPollsByEvent(ctx context.Context, eventID string) ([]entities.Poll, error) {
	var models []pollModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "poll_list_by_event_failed", err)
		return nil, err
	}
	polls := make([]entities.Poll, 0, len(models))
	for _, model := range models {
		polls = append(polls, pollFromModel(model))
	}
	return polls, nil
}

func (r *Repository) NextPollPosition(ctx context.Context, eventID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&pollModel{}).
		Where("event_id = ?", eventID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		r.logError(ctx, "poll_next_position_failed", err)
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *Repository) PublishPoll(ctx context.Context, pollID string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&pollModel{}).
		Where("id = ?", pollID).
		Updates(map[string]any{
			"published":  true,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		r.logError(ctx, "poll_publish_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) ListOptionsByPoll(ctx context.Context, pollID string) ([]entities.Option, error) {
	var models []optionModel
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "option_list_by_poll_failed", err)
		return nil, err
	}
	options := make([]entities.Option, 0, len(models))
	for _, model := range models {
		options = append(options, optionFromModel(model))
	}
	return options, nil
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	r.logger.ErrorContext(ctx, "event catalog storage failure",
		slog.String("event", event),
		slog.String("module", "event_service"),
		slog.String("layer", "adapter_postgres"),
		slog.String("error", err.Error()),
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ ports.EventRepository = (*Repository)(nil)
