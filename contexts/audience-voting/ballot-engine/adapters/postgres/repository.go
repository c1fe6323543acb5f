package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	domainerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
	"galavote/contexts/audience-voting/ballot-engine/ports"

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
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// InsertBallot writes the ballot row and its selection rows in one
// transaction. The composite unique index on (poll_id, voter_token) is the
// uniqueness guarantee: a losing concurrent insert aborts the whole
// transaction and surfaces ErrDuplicateBallot, never a partial ballot.
func (r *Repository) InsertBallot(ctx context.Context, ballot entities.Ballot) error {
	row := ballotModelFromEntity(ballot)
	selections := make([]ballotSelectionModel, 0, len(ballot.SelectedOptionIDs))
	for position, optionID := range ballot.SelectedOptionIDs {
		selections = append(selections, ballotSelectionModel{
			BallotID: row.ID,
			OptionID: strings.TrimSpace(optionID),
			Position: position,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(selections) == 0 {
			return nil
		}
		return tx.Create(&selections).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateBallot
		}
		return r.logError("ballot_repo_insert_ballot_failed", err,
			"ballot_id", row.ID,
			"poll_id", row.PollID,
		)
	}
	return nil
}

func (r *Repository) GetBallotByVoter(ctx context.Context, pollID string, voterToken string) (entities.Ballot, bool, error) {
	var row ballotModel
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Where("voter_token = ?", strings.TrimSpace(voterToken)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ballot{}, false, nil
		}
		return entities.Ballot{}, false, r.logError("ballot_repo_get_ballot_by_voter_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}

	var selections []ballotSelectionModel
	if err := r.db.WithContext(ctx).
		Where("ballot_id = ?", row.ID).
		Order("position ASC").
		Find(&selections).Error; err != nil {
		return entities.Ballot{}, false, r.logError("ballot_repo_get_selections_failed", err,
			"ballot_id", row.ID,
		)
	}
	return row.toEntity(selections), true, nil
}

func (r *Repository) ListBallotsByPoll(ctx context.Context, pollID string) ([]entities.Ballot, error) {
	var rows []ballotModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_ballots_by_poll_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ballotIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		ballotIDs = append(ballotIDs, row.ID)
	}
	var selections []ballotSelectionModel
	if err := r.db.WithContext(ctx).
		Where("ballot_id IN ?", ballotIDs).
		Find(&selections).Error; err != nil {
		return nil, r.logError("ballot_repo_list_selections_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	byBallot := make(map[string][]ballotSelectionModel, len(rows))
	for _, selection := range selections {
		byBallot[selection.BallotID] = append(byBallot[selection.BallotID], selection)
	}
	for _, grouped := range byBallot {
		sort.Slice(grouped, func(i, j int) bool {
			return grouped[i].Position < grouped[j].Position
		})
	}

	items := make([]entities.Ballot, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(byBallot[row.ID]))
	}
	return items, nil
}

func (r *Repository) GetPoll(ctx context.Context, pollID string) (ports.PollProjection, error) {
	var row pollProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pollID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PollProjection{}, domainerrors.ErrPollNotFound
		}
		return ports.PollProjection{}, r.logError("ballot_repo_get_poll_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListOptionsByPoll(ctx context.Context, pollID string) ([]ports.OptionProjection, error) {
	var rows []optionProjectionModel
	err := r.db.WithContext(ctx).
		Table("options AS o").
		Select("o.id, o.poll_id, o.position, o.subtitle, p.name").
		Joins("JOIN participants AS p ON p.id = o.participant_id").
		Where("o.poll_id = ?", strings.TrimSpace(pollID)).
		Order("o.position ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("ballot_repo_list_options_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	items := make([]ports.OptionProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (ports.EventProjection, error) {
	var row eventProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EventProjection{}, domainerrors.ErrEventNotFound
		}
		return ports.EventProjection{}, r.logError("ballot_repo_get_event_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListPollsByEvent(ctx context.Context, eventID string) ([]ports.PollProjection, error) {
	var rows []pollProjectionModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_polls_by_event_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	items := make([]ports.PollProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "audience-voting/ballot-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

type ballotModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	PollID     string    `gorm:"column:poll_id;uniqueIndex:idx_ballots_poll_voter"`
	VoterToken string    `gorm:"column:voter_token;uniqueIndex:idx_ballots_poll_voter"`
	UserID     *string   `gorm:"column:user_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (ballotModel) TableName() string {
	return "ballots"
}

func ballotModelFromEntity(ballot entities.Ballot) ballotModel {
	row := ballotModel{
		ID:         strings.TrimSpace(ballot.BallotID),
		PollID:     strings.TrimSpace(ballot.PollID),
		VoterToken: strings.TrimSpace(ballot.VoterToken),
		CreatedAt:  ballot.CreatedAt.UTC(),
	}
	if strings.TrimSpace(ballot.UserID) != "" {
		userID := strings.TrimSpace(ballot.UserID)
		row.UserID = &userID
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m ballotModel) toEntity(selections []ballotSelectionModel) entities.Ballot {
	userID := ""
	if m.UserID != nil {
		userID = strings.TrimSpace(*m.UserID)
	}
	optionIDs := make([]string, 0, len(selections))
	for _, selection := range selections {
		optionIDs = append(optionIDs, selection.OptionID)
	}
	return entities.Ballot{
		BallotID:          m.ID,
		PollID:            m.PollID,
		VoterToken:        m.VoterToken,
		UserID:            userID,
		SelectedOptionIDs: optionIDs,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}

type ballotSelectionModel struct {
	BallotID string `gorm:"column:ballot_id;primaryKey"`
	OptionID string `gorm:"column:option_id;primaryKey"`
	Position int    `gorm:"column:position"`
}

func (ballotSelectionModel) TableName() string {
	return "ballot_selections"
}

type pollProjectionModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	EventID       string    `gorm:"column:event_id"`
	Title         string    `gorm:"column:title"`
	Position      int       `gorm:"column:position"`
	VotingType    string    `gorm:"column:voting_type"`
	MaxSelections int       `gorm:"column:max_selections"`
	StartAt       time.Time `gorm:"column:start_at"`
	EndAt         time.Time `gorm:"column:end_at"`
	Published     bool      `gorm:"column:published"`
}

func (pollProjectionModel) TableName() string {
	return "polls"
}

func (m pollProjectionModel) toProjection() ports.PollProjection {
	return ports.PollProjection{
		PollID:        m.ID,
		EventID:       m.EventID,
		Title:         m.Title,
		Position:      m.Position,
		VotingType:    entities.VotingType(m.VotingType),
		MaxSelections: m.MaxSelections,
		StartAt:       m.StartAt.UTC(),
		EndAt:         m.EndAt.UTC(),
		Published:     m.Published,
	}
}

type optionProjectionModel struct {
	ID       string `gorm:"column:id"`
	PollID   string `gorm:"column:poll_id"`
	Position int    `gorm:"column:position"`
	Name     string `gorm:"column:name"`
	Subtitle string `gorm:"column:subtitle"`
}

func (m optionProjectionModel) toProjection() ports.OptionProjection {
	return ports.OptionProjection{
		OptionID: m.ID,
		PollID:   m.PollID,
		Position: m.Position,
		Name:     m.Name,
		Subtitle: m.Subtitle,
	}
}

type eventProjectionModel struct {
	ID       string     `gorm:"column:id;primaryKey"`
	Slug     string     `gorm:"column:slug"`
	Title    string     `gorm:"column:title"`
	Status   string     `gorm:"column:status"`
	IsPublic bool       `gorm:"column:is_public"`
	RevealAt *time.Time `gorm:"column:reveal_at"`
}

func (eventProjectionModel) TableName() string {
	return "events"
}

func (m eventProjectionModel) toProjection() ports.EventProjection {
	return ports.EventProjection{
		EventID:  m.ID,
		Slug:     m.Slug,
		Title:    m.Title,
		Status:   m.Status,
		IsPublic: m.IsPublic,
		RevealAt: normalizeOptionalTime(m.RevealAt),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.CatalogReader = (*Repository)(nil)
