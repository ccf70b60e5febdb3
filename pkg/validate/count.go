package validate

import (
	"fmt"
	"math"
)

// Default upper bounds for counter and limit values. Anything above these is
// assumed to be corrupted state rather than legitimate usage.
const (
	DefaultMaxCount = 10000
	DefaultMaxLimit = 10000
)

// Count checks that value is a usable counter value: non-negative and not
// above max. Pass DefaultMaxCount unless the caller has a tighter bound.
func Count(value int, field string, max int) error {
	if value < 0 {
		return fmt.Errorf("%s: %w (got %d)", field, ErrNegativeCount, value)
	}
	if value > max {
		return fmt.Errorf("%s: %w (got %d, max %d)", field, ErrCountTooHigh, value, max)
	}
	return nil
}

// Limit checks that value is a usable limit: strictly positive and not above max.
func Limit(value int, field string, max int) error {
	if value <= 0 {
		return fmt.Errorf("%s: %w (got %d)", field, ErrInvalidLimit, value)
	}
	if value > max {
		return fmt.Errorf("%s: %w (got %d, max %d)", field, ErrLimitTooHigh, value, max)
	}
	return nil
}

// CoerceCount converts a value decoded from JSON into a counter value.
// encoding/json decodes all numbers as float64, so restored state goes
// through here before it is trusted: non-numeric values fail with
// ErrInvalidType, fractional numbers with ErrInvalidInteger, and the result
// is range-checked like Count.
func CoerceCount(value any, field string, max int) (int, error) {
	n, err := coerceInt(value, field)
	if err != nil {
		return 0, err
	}
	if err := Count(n, field, max); err != nil {
		return 0, err
	}
	return n, nil
}

// CoerceLimit is CoerceCount for limit values: same numeric coercion,
// range-checked like Limit.
func CoerceLimit(value any, field string, max int) (int, error) {
	n, err := coerceInt(value, field)
	if err != nil {
		return 0, err
	}
	if err := Limit(n, field, max); err != nil {
		return 0, err
	}
	return n, nil
}

func coerceInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s: %w (got %v)", field, ErrInvalidInteger, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: %w (got %T)", field, ErrInvalidType, value)
	}
}

// SafeIncrement returns current+1 after validating both the input and the
// result. The increment never lands if either side is out of range.
func SafeIncrement(current int, field string, max int) (int, error) {
	if err := Count(current, field, max); err != nil {
		return 0, err
	}
	next := current + 1
	if err := Count(next, field, max); err != nil {
		return 0, err
	}
	return next, nil
}

// SafeDecrement returns current-1, refusing to go below floor.
func SafeDecrement(current int, field string, floor int) (int, error) {
	if err := Count(current, field, DefaultMaxCount); err != nil {
		return 0, err
	}
	if current <= floor {
		return 0, fmt.Errorf("%s: %w (at %d, floor %d)", field, ErrCannotDecrement, current, floor)
	}
	return current - 1, nil
}

// SafeReset returns the canonical reset value for a counter. It exists so
// resets flow through the same validation path as increments.
func SafeReset() int {
	return 0
}
