package errors

import "errors"

var (
	ErrVoterTokenMissing     = errors.New("voter token is missing")
	ErrPollNotFound          = errors.New("poll not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrPollClosed            = errors.New("poll is not open for voting")
	ErrInvalidOption         = errors.New("option does not belong to poll")
	ErrInvalidSelectionCount = errors.New("selection count is invalid for poll voting type")
	ErrDuplicateBallot       = errors.New("ballot already recorded for this voter")
	ErrResultsHidden         = errors.New("results are hidden until reveal")
)
