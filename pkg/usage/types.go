package usage

import (
	"encoding/json"
	"fmt"

	"github.com/mealmind/nutrikit/pkg/validate"
)

// Default free-tier quota values. Premium ignores all of them.
const (
	DefaultDailyQuestionLimit = 5
	DefaultFreeRecipeLimit    = 5
	DefaultFreeTrackingDays   = 7
)

// UnlimitedRemaining is the conventional "unlimited" sentinel returned by
// remaining-quota accessors on the premium tier. It is a display convention,
// not a hard cap.
const UnlimitedRemaining = 999

// OracleQuota tracks AI-assistant question usage. TodayCount rolls over to
// zero whenever LastResetDate is no longer the current UTC date; the roll is
// applied lazily at read/write time, never by a timer. MonthCount is a
// parallel monthly aggregate for the usage summary, rolled on MonthMarker.
type OracleQuota struct {
	DailyLimit    int    `json:"dailyLimit"`
	TodayCount    int    `json:"todayCount"`
	LastResetDate string `json:"lastResetDate"`
	MonthCount    int    `json:"monthCount"`
	MonthMarker   string `json:"monthMarker"`
}

// RecipeQuota tracks recipe creation. The free-tier cap is a lifetime count
// with no periodic reset; this asymmetry with the oracle quota is deliberate.
type RecipeQuota struct {
	FreeLimit    int `json:"freeLimit"`
	CurrentCount int `json:"currentCount"`
}

// TrackingQuota tracks the meal-tracking trial. StartDate is empty until the
// first tracking action and set exactly once. Gate decisions derive from the
// elapsed days since StartDate; DaysUsed is a persisted mirror of that
// derivation kept for display.
type TrackingQuota struct {
	FreeDays  int    `json:"freeDays"`
	StartDate string `json:"startDate,omitempty"`
	DaysUsed  int    `json:"daysUsed"`
}

// Limits is the full persisted usage-limit record owned by the Service.
type Limits struct {
	Oracle   OracleQuota   `json:"oracle"`
	Recipes  RecipeQuota   `json:"recipes"`
	Tracking TrackingQuota `json:"tracking"`
}

// DefaultLimits returns a fresh record with free-tier defaults and the oracle
// reset markers pinned to the current UTC period.
func DefaultLimits() Limits {
	return Limits{
		Oracle: OracleQuota{
			DailyLimit:    DefaultDailyQuestionLimit,
			TodayCount:    0,
			LastResetDate: validate.CurrentDateString(),
			MonthCount:    0,
			MonthMarker:   validate.CurrentMonthString(),
		},
		Recipes: RecipeQuota{
			FreeLimit:    DefaultFreeRecipeLimit,
			CurrentCount: 0,
		},
		Tracking: TrackingQuota{
			FreeDays: DefaultFreeTrackingDays,
			DaysUsed: 0,
		},
	}
}

// Validate runs the deep-shape check used to guard restored state. A record
// that fails here is discarded and replaced with defaults rather than
// trusted.
func (l Limits) Validate() error {
	if err := validate.Limit(l.Oracle.DailyLimit, "oracle.dailyLimit", validate.DefaultMaxLimit); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.Count(l.Oracle.TodayCount, "oracle.todayCount", validate.DefaultMaxCount); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.DateString(l.Oracle.LastResetDate, "oracle.lastResetDate"); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.Count(l.Oracle.MonthCount, "oracle.monthCount", validate.DefaultMaxCount); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.MonthString(l.Oracle.MonthMarker, "oracle.monthMarker"); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}

	if err := validate.Limit(l.Recipes.FreeLimit, "recipes.freeLimit", validate.DefaultMaxLimit); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.Count(l.Recipes.CurrentCount, "recipes.currentCount", validate.DefaultMaxCount); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}

	if err := validate.Limit(l.Tracking.FreeDays, "tracking.freeDays", validate.DefaultMaxLimit); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.TrackingStartDate(l.Tracking.StartDate, "tracking.startDate"); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if err := validate.Count(l.Tracking.DaysUsed, "tracking.daysUsed", validate.DefaultMaxCount); err != nil {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}

	return nil
}

// DecodeLimits parses and validates a persisted usage-limit record. Numeric
// fields pass through the JSON coercion helpers so corrupted payloads
// (fractional counts, strings where numbers belong) are rejected with the
// validation taxonomy instead of silently truncated.
func DecodeLimits(payload string) (Limits, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	for _, section := range []string{"oracle", "recipes", "tracking"} {
		if _, ok := raw[section]; !ok {
			return Limits{}, fmt.Errorf("%w: missing section %q", validate.ErrInvalidStructure, section)
		}
	}

	var decoded struct {
		Oracle struct {
			DailyLimit    any    `json:"dailyLimit"`
			TodayCount    any    `json:"todayCount"`
			LastResetDate string `json:"lastResetDate"`
			MonthCount    any    `json:"monthCount"`
			MonthMarker   string `json:"monthMarker"`
		} `json:"oracle"`
		Recipes struct {
			FreeLimit    any `json:"freeLimit"`
			CurrentCount any `json:"currentCount"`
		} `json:"recipes"`
		Tracking struct {
			FreeDays  any    `json:"freeDays"`
			StartDate string `json:"startDate"`
			DaysUsed  any    `json:"daysUsed"`
		} `json:"tracking"`
	}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}

	var limits Limits
	var err error

	if limits.Oracle.DailyLimit, err = validate.CoerceLimit(decoded.Oracle.DailyLimit, "oracle.dailyLimit", validate.DefaultMaxLimit); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if limits.Oracle.TodayCount, err = validate.CoerceCount(decoded.Oracle.TodayCount, "oracle.todayCount", validate.DefaultMaxCount); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if limits.Oracle.MonthCount, err = validate.CoerceCount(decoded.Oracle.MonthCount, "oracle.monthCount", validate.DefaultMaxCount); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	limits.Oracle.LastResetDate = decoded.Oracle.LastResetDate
	limits.Oracle.MonthMarker = decoded.Oracle.MonthMarker

	if limits.Recipes.FreeLimit, err = validate.CoerceLimit(decoded.Recipes.FreeLimit, "recipes.freeLimit", validate.DefaultMaxLimit); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if limits.Recipes.CurrentCount, err = validate.CoerceCount(decoded.Recipes.CurrentCount, "recipes.currentCount", validate.DefaultMaxCount); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}

	if limits.Tracking.FreeDays, err = validate.CoerceLimit(decoded.Tracking.FreeDays, "tracking.freeDays", validate.DefaultMaxLimit); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	if limits.Tracking.DaysUsed, err = validate.CoerceCount(decoded.Tracking.DaysUsed, "tracking.daysUsed", validate.DefaultMaxCount); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", validate.ErrInvalidStructure, err)
	}
	limits.Tracking.StartDate = decoded.Tracking.StartDate

	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}

	return limits, nil
}

// Encode serializes the record for the KV store.
func (l Limits) Encode() (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UsageSummary is a read-only snapshot for settings/paywall screens.
type UsageSummary struct {
	QuestionsToday     int
	QuestionsThisMonth int
	RemainingQuestions int
	RecipesCreated     int
	RemainingRecipes   int
	TrackingDaysUsed   int
	RemainingTracking  int
	Unlimited          bool
}
