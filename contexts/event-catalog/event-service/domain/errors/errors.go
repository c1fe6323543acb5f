package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEventInput = errors.New("invalid event input")
	ErrInvalidPollInput  = errors.New("invalid poll input")
	ErrEventNotFound     = errors.New("event not found")
	ErrPollNotFound      = errors.New("poll not found")
	ErrSlugTaken         = errors.New("event slug is already taken")
	ErrInvalidTransition = errors.New("event status transition is not allowed")
	ErrNotOwner          = errors.New("caller does not own the event")
	ErrQuotaExceededBase = errors.New("event quota exceeded")
)

// QuotaExceededError carries the plan context the transport surfaces with an
// upgrade prompt. It matches ErrQuotaExceededBase under errors.Is.
type QuotaExceededError struct {
	CurrentCount int
	Quota        int
	PlanName     string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("event quota exceeded: %d of %d on plan %s", e.CurrentCount, e.Quota, e.PlanName)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceededBase
}
