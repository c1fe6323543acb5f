package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	domainerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
	"galavote/contexts/audience-voting/ballot-engine/ports"

	"github.com/google/uuid"
)

// Store backs tests and local wiring. It mirrors the postgres adapter's
// semantics: InsertBallot holds the lock across the uniqueness check and the
// write, so concurrent duplicates resolve to exactly one winner.
type Store struct {
	mu sync.RWMutex

	ballots map[string]entities.Ballot
	byVoter map[string]string

	polls   map[string]ports.PollProjection
	options map[string][]ports.OptionProjection
	events  map[string]ports.EventProjection
}

func NewStore(seed []entities.Ballot) *Store {
	store := &Store{
		ballots: make(map[string]entities.Ballot, len(seed)),
		byVoter: make(map[string]string, len(seed)),
		polls:   make(map[string]ports.PollProjection),
		options: make(map[string][]ports.OptionProjection),
		events:  make(map[string]ports.EventProjection),
	}
	for _, ballot := range seed {
		store.ballots[ballot.BallotID] = ballot
		store.byVoter[voterKey(ballot.PollID, ballot.VoterToken)] = ballot.BallotID
	}
	return store
}

func (s *Store) SetPoll(poll ports.PollProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[strings.TrimSpace(poll.PollID)] = poll
}

func (s *Store) SetOption(option ports.OptionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pollID := strings.TrimSpace(option.PollID)
	s.options[pollID] = append(s.options[pollID], option)
}

func (s *Store) SetEvent(event ports.EventProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[strings.TrimSpace(event.EventID)] = event
}

func (s *Store) InsertBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voterKey(ballot.PollID, ballot.VoterToken)
	if _, exists := s.byVoter[key]; exists {
		return domainerrors.ErrDuplicateBallot
	}
	copied := ballot
	copied.SelectedOptionIDs = append([]string(nil), ballot.SelectedOptionIDs...)
	s.ballots[ballot.BallotID] = copied
	s.byVoter[key] = ballot.BallotID
	return nil
}

func (s *Store) GetBallotByVoter(_ context.Context, pollID string, voterToken string) (entities.Ballot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballotID, found := s.byVoter[voterKey(strings.TrimSpace(pollID), strings.TrimSpace(voterToken))]
	if !found {
		return entities.Ballot{}, false, nil
	}
	ballot := s.ballots[ballotID]
	ballot.SelectedOptionIDs = append([]string(nil), ballot.SelectedOptionIDs...)
	return ballot, true, nil
}

func (s *Store) ListBallotsByPoll(_ context.Context, pollID string) ([]entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pollID = strings.TrimSpace(pollID)
	items := make([]entities.Ballot, 0)
	for _, ballot := range s.ballots {
		if ballot.PollID != pollID {
			continue
		}
		ballot.SelectedOptionIDs = append([]string(nil), ballot.SelectedOptionIDs...)
		items = append(items, ballot)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].BallotID < items[j].BallotID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetPoll(_ context.Context, pollID string) (ports.PollProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, found := s.polls[strings.TrimSpace(pollID)]
	if !found {
		return ports.PollProjection{}, domainerrors.ErrPollNotFound
	}
	return poll, nil
}

func (s *Store) ListOptionsByPoll(_ context.Context, pollID string) ([]ports.OptionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]ports.OptionProjection(nil), s.options[strings.TrimSpace(pollID)]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (ports.EventProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, found := s.events[strings.TrimSpace(eventID)]
	if !found {
		return ports.EventProjection{}, domainerrors.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) ListPollsByEvent(_ context.Context, eventID string) ([]ports.PollProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eventID = strings.TrimSpace(eventID)
	items := make([]ports.PollProjection, 0)
	for _, poll := range s.polls {
		if poll.EventID == eventID {
			items = append(items, poll)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func voterKey(pollID string, voterToken string) string {
	return pollID + "|" + voterToken
}

var _ ports.BallotRepository = (*Store)(nil)
var _ ports.CatalogReader = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
