package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealmind/nutrikit/pkg/usage"
	"github.com/mealmind/nutrikit/pkg/validate"
)

func TestDecodeLimits(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		original := usage.DefaultLimits()
		original.Oracle.TodayCount = 3
		original.Tracking.StartDate = utcDate(-2)
		original.Tracking.DaysUsed = 3

		payload, err := original.Encode()
		require.NoError(t, err)

		restored, err := usage.DecodeLimits(payload)
		require.NoError(t, err)
		assert.Equal(t, original, restored)
	})

	t.Run("missing section", func(t *testing.T) {
		t.Parallel()

		_, err := usage.DecodeLimits(`{"oracle":{},"recipes":{}}`)
		assert.ErrorIs(t, err, validate.ErrInvalidStructure)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		_, err := usage.DecodeLimits(`not json at all`)
		assert.ErrorIs(t, err, validate.ErrInvalidStructure)
	})

	t.Run("fractional count", func(t *testing.T) {
		t.Parallel()

		_, err := usage.DecodeLimits(`{
			"oracle":{"dailyLimit":5,"todayCount":2.5,"lastResetDate":"` + utcDate(0) + `","monthCount":0,"monthMarker":"` + validate.CurrentMonthString() + `"},
			"recipes":{"freeLimit":5,"currentCount":0},
			"tracking":{"freeDays":7,"daysUsed":0}
		}`)
		assert.ErrorIs(t, err, validate.ErrInvalidStructure)
		assert.ErrorIs(t, err, validate.ErrInvalidInteger)
	})

	t.Run("wrong type for limit", func(t *testing.T) {
		t.Parallel()

		_, err := usage.DecodeLimits(`{
			"oracle":{"dailyLimit":"five","todayCount":0,"lastResetDate":"` + utcDate(0) + `","monthCount":0,"monthMarker":"` + validate.CurrentMonthString() + `"},
			"recipes":{"freeLimit":5,"currentCount":0},
			"tracking":{"freeDays":7,"daysUsed":0}
		}`)
		assert.ErrorIs(t, err, validate.ErrInvalidType)
	})

	t.Run("stale tracking start date", func(t *testing.T) {
		t.Parallel()

		bad := usage.DefaultLimits()
		bad.Tracking.StartDate = utcDate(-31)
		payload, err := bad.Encode()
		require.NoError(t, err)

		_, err = usage.DecodeLimits(payload)
		assert.ErrorIs(t, err, validate.ErrStartDateTooOld)
	})
}

func TestLimitsValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, usage.DefaultLimits().Validate())
	})

	t.Run("zero limit rejected", func(t *testing.T) {
		t.Parallel()

		bad := usage.DefaultLimits()
		bad.Recipes.FreeLimit = 0
		assert.ErrorIs(t, bad.Validate(), validate.ErrInvalidLimit)
	})

	t.Run("negative count rejected", func(t *testing.T) {
		t.Parallel()

		bad := usage.DefaultLimits()
		bad.Tracking.DaysUsed = -1
		assert.ErrorIs(t, bad.Validate(), validate.ErrNegativeCount)
	})
}
