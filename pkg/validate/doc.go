// Package validate guards every quota mutation against malformed input before
// it reaches persisted state.
//
// The package provides three groups of helpers:
//
//   - Counter and limit checks (Count, Limit, SafeIncrement, SafeDecrement)
//     with fixed upper bounds, so a corrupted counter can never be written back.
//   - Date and month string checks (DateString, MonthString, TrackingStartDate)
//     operating on canonical UTC strings. All period comparisons in the quota
//     system use CurrentDateString/CurrentMonthString output, never local time.
//   - Coercion helpers (CoerceCount, CoerceLimit) for values decoded from
//     JSON, where numbers arrive as float64 and corrupted state can carry any
//     type at all.
//
// Atomic wraps a mutation in the "validate fully before any mutation"
// discipline: the operation does all of its checks first and commits last, so
// an error return always means state was left untouched.
//
// Basic usage:
//
//	if err := validate.Count(quota.TodayCount, "todayCount", validate.DefaultMaxCount); err != nil {
//	    return err
//	}
//	next, err := validate.SafeIncrement(quota.TodayCount, "todayCount", quota.DailyLimit)
package validate
