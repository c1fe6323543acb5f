package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"galavote/contexts/event-catalog/event-service/domain/entities"
	domainerrors "galavote/contexts/event-catalog/event-service/domain/errors"
	"galavote/contexts/event-catalog/event-service/ports"

	"github.com/google/uuid"
)

// Store backs tests and local wiring. CreateEvent holds the lock across the
// quota count and the insert, mirroring the postgres adapter's transactional
// guarantee.
type Store struct {
	mu sync.RWMutex

	events       map[string]entities.Event
	slugs        map[string]string
	polls        map[string]entities.Poll
	options      map[string][]entities.Option
	participants map[string]entities.Participant
	billing      map[string]entities.BillingAccount
}

func NewStore() *Store {
	return &Store{
		events:       make(map[string]entities.Event),
		slugs:        make(map[string]string),
		polls:        make(map[string]entities.Poll),
		options:      make(map[string][]entities.Option),
		participants: make(map[string]entities.Participant),
		billing:      make(map[string]entities.BillingAccount),
	}
}

func (s *Store) SetBillingAccount(account entities.BillingAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billing[strings.TrimSpace(account.UserID)] = account
}

func (s *Store) GetBillingAccount(_ context.Context, userID string) (entities.BillingAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, found := s.billing[strings.TrimSpace(userID)]
	if !found {
		// Unknown accounts derive the free tier downstream.
		return entities.BillingAccount{UserID: strings.TrimSpace(userID)}, nil
	}
	return account, nil
}

func (s *Store) CreateEvent(_ context.Context, event entities.Event, quota int, planName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, existing := range s.events {
		if strings.EqualFold(existing.OwnerUserID, event.OwnerUserID) {
			count++
		}
	}
	if count >= quota {
		return &domainerrors.QuotaExceededError{
			CurrentCount: count,
			Quota:        quota,
			PlanName:     planName,
		}
	}
	if _, taken := s.slugs[event.Slug]; taken {
		return domainerrors.ErrSlugTaken
	}

	s.events[event.EventID] = event
	s.slugs[event.Slug] = event.EventID
	return nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (entities.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, found := s.events[strings.TrimSpace(eventID)]
	if !found {
		return entities.Event{}, domainerrors.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) GetEventBySlug(_ context.Context, slug string) (entities.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eventID, found := s.slugs[strings.TrimSpace(slug)]
	if !found {
		return entities.Event{}, domainerrors.ErrEventNotFound
	}
	return s.events[eventID], nil
}

func (s *Store) ListEventsByOwner(_ context.Context, ownerUserID string) ([]entities.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Event, 0)
	for _, event := range s.events {
		if strings.EqualFold(event.OwnerUserID, strings.TrimSpace(ownerUserID)) {
			items = append(items, event)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].EventID < items[j].EventID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateEventStatus(_ context.Context, eventID string, status entities.EventStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, found := s.events[strings.TrimSpace(eventID)]
	if !found {
		return domainerrors.ErrEventNotFound
	}
	event.Status = status
	event.UpdatedAt = updatedAt.UTC()
	s.events[event.EventID] = event
	return nil
}

func (s *Store) DeleteEventCascade(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, found := s.events[strings.TrimSpace(eventID)]
	if !found {
		return domainerrors.ErrEventNotFound
	}
	delete(s.events, event.EventID)
	delete(s.slugs, event.Slug)
	for pollID, poll := range s.polls {
		if poll.EventID == event.EventID {
			delete(s.polls, pollID)
			delete(s.options, pollID)
		}
	}
	return nil
}

func (s *Store) CreatePollWithOptions(
	_ context.Context,
	poll entities.Poll,
	participants []entities.Participant,
	options []entities.Option,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.events[poll.EventID]; !found {
		return domainerrors.ErrEventNotFound
	}
	s.polls[poll.PollID] = poll
	for _, participant := range participants {
		s.participants[participant.ParticipantID] = participant
	}
	s.options[poll.PollID] = append([]entities.Option(nil), options...)
	return nil
}

func (s *Store) GetPoll(_ context.Context, pollID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, found := s.polls[strings.TrimSpace(pollID)]
	if !found {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return poll, nil
}

func (s *Store) ListPollsByEvent(_ context.Context, eventID string) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Poll, 0)
	for _, poll := range s.polls {
		if poll.EventID == strings.TrimSpace(eventID) {
			items = append(items, poll)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

func (s *Store) NextPollPosition(_ context.Context, eventID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	next := 0
	for _, poll := range s.polls {
		if poll.EventID == strings.TrimSpace(eventID) && poll.Position >= next {
			next = poll.Position + 1
		}
	}
	return next, nil
}

func (s *Store) PublishPoll(_ context.Context, pollID string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, found := s.polls[strings.TrimSpace(pollID)]
	if !found {
		return domainerrors.ErrPollNotFound
	}
	poll.Published = true
	poll.UpdatedAt = updatedAt.UTC()
	s.polls[poll.PollID] = poll
	return nil
}

func (s *Store) ListOptionsByPoll(_ context.Context, pollID string) ([]entities.Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]entities.Option(nil), s.options[strings.TrimSpace(pollID)]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

func (s *Store) ParticipantName(participantID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participants[strings.TrimSpace(participantID)].Name
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.EventRepository = (*Store)(nil)
var _ ports.BillingReader = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
