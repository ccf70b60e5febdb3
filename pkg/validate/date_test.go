package validate_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealmind/nutrikit/pkg/validate"
)

func utcDate(daysFromToday int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromToday).Format("2006-01-02")
}

func TestCurrentDateString(t *testing.T) {
	t.Parallel()

	got := validate.CurrentDateString()
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), got)

	parsed, err := time.Parse("2006-01-02", got)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year(), parsed.Year())
}

func TestCurrentMonthString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Now().UTC().Format("2006-01"), validate.CurrentMonthString())
}

func TestDateString(t *testing.T) {
	t.Parallel()

	t.Run("accepts today", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.DateString(utcDate(0), "date"))
	})

	t.Run("accepts yesterday", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.DateString(utcDate(-1), "date"))
	})

	t.Run("accepts tomorrow for timezone skew", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.DateString(utcDate(1), "date"))
	})

	t.Run("rejects wrong format", func(t *testing.T) {
		t.Parallel()

		for _, value := range []string{"01-01-2024", "2024/01/01", "2024-1-1", "", "not-a-date"} {
			err := validate.DateString(value, "date")
			assert.ErrorIs(t, err, validate.ErrInvalidDateFormat, "value %q", value)
		}
	})

	t.Run("rejects impossible calendar date", func(t *testing.T) {
		t.Parallel()

		err := validate.DateString("2024-02-30", "date")
		assert.ErrorIs(t, err, validate.ErrInvalidDate)

		err = validate.DateString("2024-13-01", "date")
		assert.ErrorIs(t, err, validate.ErrInvalidDate)
	})

	t.Run("rejects far future", func(t *testing.T) {
		t.Parallel()

		err := validate.DateString("2099-01-01", "date")
		assert.ErrorIs(t, err, validate.ErrFutureDate)

		err = validate.DateString(utcDate(2), "date")
		assert.ErrorIs(t, err, validate.ErrFutureDate)
	})

	t.Run("rejects older than a year", func(t *testing.T) {
		t.Parallel()

		err := validate.DateString("1999-01-01", "date")
		assert.ErrorIs(t, err, validate.ErrDateTooOld)

		err = validate.DateString(utcDate(-366), "date")
		assert.ErrorIs(t, err, validate.ErrDateTooOld)
	})
}

func TestMonthString(t *testing.T) {
	t.Parallel()

	t.Run("accepts current month", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.MonthString(validate.CurrentMonthString(), "month"))
	})

	t.Run("rejects wrong format", func(t *testing.T) {
		t.Parallel()

		for _, value := range []string{"2024-1", "01-2024", "2024", ""} {
			err := validate.MonthString(value, "month")
			assert.ErrorIs(t, err, validate.ErrInvalidMonthFormat, "value %q", value)
		}
	})

	t.Run("rejects month out of range", func(t *testing.T) {
		t.Parallel()

		err := validate.MonthString("2024-13", "month")
		assert.ErrorIs(t, err, validate.ErrInvalidMonth)

		err = validate.MonthString("2024-00", "month")
		assert.ErrorIs(t, err, validate.ErrInvalidMonth)
	})

	t.Run("rejects year out of range", func(t *testing.T) {
		t.Parallel()

		err := validate.MonthString("2019-06", "month")
		assert.ErrorIs(t, err, validate.ErrInvalidYear)

		err = validate.MonthString("2101-06", "month")
		assert.ErrorIs(t, err, validate.ErrInvalidYear)
	})

	t.Run("rejects future month", func(t *testing.T) {
		t.Parallel()

		future := time.Now().UTC().AddDate(0, 2, 0).Format("2006-01")
		err := validate.MonthString(future, "month")
		assert.ErrorIs(t, err, validate.ErrFutureMonth)
	})
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	t.Run("same day is one", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1, validate.DaysSince(utcDate(0)))
	})

	t.Run("yesterday is two", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, validate.DaysSince(utcDate(-1)))
	})

	t.Run("a week ago is eight", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 8, validate.DaysSince(utcDate(-7)))
	})

	t.Run("sentinel for missing or invalid input", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, -1, validate.DaysSince(""))
		assert.Equal(t, -1, validate.DaysSince("garbage"))
		assert.Equal(t, -1, validate.DaysSince(utcDate(1)), "future start date")
	})
}

func TestTrackingStartDate(t *testing.T) {
	t.Parallel()

	t.Run("empty means trial not started", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.TrackingStartDate("", "startDate"))
	})

	t.Run("accepts recent start", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.TrackingStartDate(utcDate(0), "startDate"))
		assert.NoError(t, validate.TrackingStartDate(utcDate(-7), "startDate"))
		assert.NoError(t, validate.TrackingStartDate(utcDate(-29), "startDate"))
	})

	t.Run("rejects stale start", func(t *testing.T) {
		t.Parallel()

		err := validate.TrackingStartDate(utcDate(-31), "startDate")
		assert.ErrorIs(t, err, validate.ErrStartDateTooOld)
	})

	t.Run("rejects malformed start", func(t *testing.T) {
		t.Parallel()

		err := validate.TrackingStartDate("01/02/2024", "startDate")
		assert.ErrorIs(t, err, validate.ErrInvalidStartDate)
	})
}

func TestAtomic(t *testing.T) {
	t.Parallel()

	t.Run("passes through success", func(t *testing.T) {
		t.Parallel()

		ran := false
		err := validate.Atomic(slog.Default(), "test-op", func() error {
			ran = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("propagates failure", func(t *testing.T) {
		t.Parallel()

		err := validate.Atomic(nil, "test-op", func() error {
			return validate.ErrNegativeCount
		})
		assert.ErrorIs(t, err, validate.ErrNegativeCount)
	})
}
