package validate

import (
	"fmt"
	"regexp"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	// Month strings are bounded to a sane range so corrupted state
	// (e.g. "0001-01" from a zero time.Time) is rejected outright.
	minYear = 2020
	maxYear = 2100

	// Oldest date accepted by DateString, in days.
	maxDateAge = 365

	// Tracking trials run for days, not months. A start date older than
	// this is treated as corrupted state.
	maxTrackingAge = 30
)

var (
	dateFormatRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthFormatRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// CurrentDateString returns today's date as a canonical UTC YYYY-MM-DD string.
// Every date comparison in the quota system uses UTC-derived strings so that
// rollover decisions do not drift with the device timezone.
func CurrentDateString() string {
	return time.Now().UTC().Format(dateLayout)
}

// CurrentMonthString returns the current month as a canonical UTC YYYY-MM string.
func CurrentMonthString() string {
	return time.Now().UTC().Format(monthLayout)
}

// DateString checks that value is a well-formed, real, plausible calendar
// date. A one-day future tolerance absorbs timezone skew between the device
// clock and UTC; anything older than a year is treated as corrupted state.
func DateString(value, field string) error {
	if !dateFormatRe.MatchString(value) {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidDateFormat, value)
	}

	parsed, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidDate, value)
	}

	today := midnightUTC(time.Now())
	if parsed.After(today.AddDate(0, 0, 1)) {
		return fmt.Errorf("%s: %w (got %q)", field, ErrFutureDate, value)
	}
	if parsed.Before(today.AddDate(0, 0, -maxDateAge)) {
		return fmt.Errorf("%s: %w (got %q)", field, ErrDateTooOld, value)
	}

	return nil
}

// MonthString checks that value is a well-formed YYYY-MM month within the
// supported range and not in the future.
func MonthString(value, field string) error {
	if !monthFormatRe.MatchString(value) {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidMonthFormat, value)
	}

	parsed, err := time.ParseInLocation(monthLayout, value, time.UTC)
	if err != nil {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidMonth, value)
	}

	if year := parsed.Year(); year < minYear || year > maxYear {
		return fmt.Errorf("%s: %w (got %d)", field, ErrInvalidYear, year)
	}

	now := time.Now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if parsed.After(currentMonth) {
		return fmt.Errorf("%s: %w (got %q)", field, ErrFutureMonth, value)
	}

	return nil
}

// DaysSince returns the whole-day difference between the start date and
// today, both at UTC midnight, inclusive of the start day: a start date of
// today returns 1. Returns -1 for empty or unparseable input so callers that
// tolerate missing data can branch without an error check.
func DaysSince(startDate string) int {
	if startDate == "" {
		return -1
	}

	parsed, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return -1
	}

	today := midnightUTC(time.Now())
	diff := int(today.Sub(parsed).Hours() / 24)
	if diff < 0 {
		return -1
	}
	return diff + 1
}

// TrackingStartDate checks a persisted trial start marker. An empty string is
// valid (trial never started). A present value must be a real date whose
// elapsed days land in [1, 30]; anything else is a stale or corrupted marker.
func TrackingStartDate(value, field string) error {
	if value == "" {
		return nil
	}

	if err := DateString(value, field); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStartDate, err)
	}

	elapsed := DaysSince(value)
	if elapsed < 1 {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidStartDate, value)
	}
	if elapsed > maxTrackingAge {
		return fmt.Errorf("%s: %w (%d days elapsed)", field, ErrStartDateTooOld, elapsed)
	}

	return nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
