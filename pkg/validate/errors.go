package validate

import "errors"

// Validation errors for count and limit values.
var (
	ErrInvalidType    = errors.New("value is not a number")
	ErrInvalidInteger = errors.New("value is not an integer")
	ErrNegativeCount  = errors.New("count cannot be negative")
	ErrCountTooHigh   = errors.New("count exceeds maximum allowed value")
	ErrInvalidLimit   = errors.New("limit must be a positive number")
	ErrLimitTooHigh   = errors.New("limit exceeds maximum allowed value")
	ErrCannotDecrement = errors.New("count cannot be decremented below floor")
)

// Validation errors for date and month strings.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDate        = errors.New("date is not a real calendar date")
	ErrFutureDate         = errors.New("date cannot be in the future")
	ErrDateTooOld         = errors.New("date is more than a year in the past")
	ErrInvalidMonthFormat = errors.New("month must be in YYYY-MM format")
	ErrInvalidMonth       = errors.New("month must be between 01 and 12")
	ErrInvalidYear        = errors.New("year is out of the supported range")
	ErrFutureMonth        = errors.New("month cannot be in the future")
)

// Validation errors for trial tracking and restored state.
var (
	ErrInvalidStartDate = errors.New("tracking start date is invalid")
	ErrStartDateTooOld  = errors.New("tracking start date is stale")
	ErrInvalidStructure = errors.New("persisted usage limits structure is invalid")
)
