package postgresadapter

import (
	"time"

	"galavote/contexts/event-catalog/event-service/domain/entities"
)

type eventModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Slug        string     `gorm:"column:slug;uniqueIndex:idx_events_slug"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	IsPublic    bool       `gorm:"column:is_public"`
	RevealAt    *time.Time `gorm:"column:reveal_at"`
	OwnerUserID string     `gorm:"column:owner_user_id;index:idx_events_owner"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (eventModel) TableName() string { return "events" }

type pollModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	EventID       string    `gorm:"column:event_id;index:idx_polls_event"`
	Title         string    `gorm:"column:title"`
	Position      int       `gorm:"column:position"`
	VotingType    string    `gorm:"column:voting_type"`
	MaxSelections int       `gorm:"column:max_selections"`
	StartAt       time.Time `gorm:"column:start_at"`
	EndAt         time.Time `gorm:"column:end_at"`
	Published     bool      `gorm:"column:published"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (pollModel) TableName() string { return "polls" }

type optionModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	PollID        string `gorm:"column:poll_id;index:idx_options_poll"`
	Position      int    `gorm:"column:position"`
	ParticipantID string `gorm:"column:participant_id"`
	Subtitle      string `gorm:"column:subtitle"`
}

func (optionModel) TableName() string { return "options" }

type participantModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name"`
	ImageURL string `gorm:"column:image_url"`
}

func (participantModel) TableName() string { return "participants" }

// ballotRowModel exists so the cascade delete can reach the ballot ledger
// without importing the voting context.
type ballotRowModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	PollID string `gorm:"column:poll_id"`
}

func (ballotRowModel) TableName() string { return "ballots" }

func eventToModel(event entities.Event) *eventModel {
	return &eventModel{
		ID:          event.EventID,
		Slug:        event.Slug,
		Title:       event.Title,
		Description: event.Description,
		Status:      string(event.Status),
		IsPublic:    event.IsPublic,
		RevealAt:    normalizeOptionalTime(event.RevealAt),
		OwnerUserID: event.OwnerUserID,
		CreatedAt:   event.CreatedAt.UTC(),
		UpdatedAt:   event.UpdatedAt.UTC(),
	}
}

func eventFromModel(model eventModel) entities.Event {
	return entities.Event{
		EventID:     model.ID,
		Slug:        model.Slug,
		Title:       model.Title,
		Description: model.Description,
		Status:      entities.EventStatus(model.Status),
		IsPublic:    model.IsPublic,
		RevealAt:    normalizeOptionalTime(model.RevealAt),
		OwnerUserID: model.OwnerUserID,
		CreatedAt:   model.CreatedAt.UTC(),
		UpdatedAt:   model.UpdatedAt.UTC(),
	}
}

func pollToModel(poll entities.Poll) *pollModel {
	return &pollModel{
		ID:            poll.PollID,
		EventID:       poll.EventID,
		Title:         poll.Title,
		Position:      poll.Position,
		VotingType:    string(poll.VotingType),
		MaxSelections: poll.MaxSelections,
		StartAt:       poll.StartAt.UTC(),
		EndAt:         poll.EndAt.UTC(),
		Published:     poll.Published,
		CreatedAt:     poll.CreatedAt.UTC(),
		UpdatedAt:     poll.UpdatedAt.UTC(),
	}
}

func pollFromModel(model pollModel) entities.Poll {
	return entities.Poll{
		PollID:        model.ID,
		EventID:       model.EventID,
		Title:         model.Title,
		Position:      model.Position,
		VotingType:    entities.VotingType(model.VotingType),
		MaxSelections: model.MaxSelections,
		StartAt:       model.StartAt.UTC(),
		EndAt:         model.EndAt.UTC(),
		Published:     model.Published,
		CreatedAt:     model.CreatedAt.UTC(),
		UpdatedAt:     model.UpdatedAt.UTC(),
	}
}

func optionToModel(option entities.Option) *optionModel {
	return &optionModel{
		ID:            option.OptionID,
		PollID:        option.PollID,
		Position:      option.Position,
		ParticipantID: option.ParticipantID,
		Subtitle:      option.Subtitle,
	}
}

func optionFromModel(model optionModel) entities.Option {
	return entities.Option{
		OptionID:      model.ID,
		PollID:        model.PollID,
		Position:      model.Position,
		ParticipantID: model.ParticipantID,
		Subtitle:      model.Subtitle,
	}
}

func participantToModel(participant entities.Participant) *participantModel {
	return &participantModel{
		ID:       participant.ParticipantID,
		Name:     participant.Name,
		ImageURL: participant.ImageURL,
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
