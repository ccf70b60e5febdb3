package usage

import "errors"

var (
	// ErrLimitExceeded is returned by increments when the free-tier quota
	// is exhausted. State is left untouched.
	ErrLimitExceeded = errors.New("usage limit exceeded")

	// ErrTrialExpired is returned by tracking increments once the trial
	// window has lapsed.
	ErrTrialExpired = errors.New("tracking trial has expired")

	// ErrFailedToPersist wraps store failures on the commit path.
	ErrFailedToPersist = errors.New("failed to persist usage limits")
)
