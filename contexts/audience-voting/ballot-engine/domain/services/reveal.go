package services

import (
	"time"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
)

// RevealStateAt derives the reveal gate from stored reveal time and wall
// clock. An unset reveal time means hidden indefinitely, never implicitly
// revealed. The transition is time-driven and monotonic; nothing persists it.
func RevealStateAt(revealAt *time.Time, now time.Time) entities.RevealState {
	if revealAt == nil {
		return entities.RevealStateHidden
	}
	if now.UTC().Before(revealAt.UTC()) {
		return entities.RevealStateHidden
	}
	return entities.RevealStateRevealed
}
