package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mealmind/nutrikit/pkg/entitlement"
	"github.com/mealmind/nutrikit/pkg/kv"
	"github.com/mealmind/nutrikit/pkg/validate"
)

// DefaultStorageKey is the KV key the service persists its record under.
const DefaultStorageKey = "usage_limits"

// TierSource provides the current subscription tier. The entitlement
// Resolver satisfies it; tests supply a fixed value.
type TierSource interface {
	Tier() entitlement.Tier
}

// TierFunc adapts a function to the TierSource interface.
type TierFunc func() entitlement.Tier

func (f TierFunc) Tier() entitlement.Tier { return f() }

// Service is the usage-limit engine. It exclusively owns the three quota
// records. Every mutation reconciles stale counters first, checks the gate,
// persists the candidate record, and only then commits it to memory.
//
// The premium tier short-circuits every gate to "always allowed" without
// touching counters. The loading tier gates like free: an unresolved
// entitlement never opens access.
type Service struct {
	mu     sync.Mutex
	limits Limits
	store  kv.Store
	tiers  TierSource
	log    *slog.Logger
	key    string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for rejected mutations and corrupted state.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStorageKey overrides the KV key the record is persisted under.
func WithStorageKey(key string) ServiceOption {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLimits seeds the starting record, replacing the package defaults. The
// record must pass Validate; an invalid seed panics to fail fast at startup.
func WithLimits(limits Limits) ServiceOption {
	return func(s *Service) {
		if err := limits.Validate(); err != nil {
			panic(fmt.Sprintf("usage: invalid seed limits: %v", err))
		}
		s.limits = limits
	}
}

// NewService creates the engine, restoring persisted state from the store. A
// missing record starts from defaults; a corrupted record is logged,
// discarded and replaced with defaults rather than trusted. Panics if store
// or tiers is nil.
func NewService(ctx context.Context, store kv.Store, tiers TierSource, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		panic("usage: kv.Store is required")
	}
	if tiers == nil {
		panic("usage: TierSource is required")
	}

	s := &Service{
		limits: DefaultLimits(),
		store:  store,
		tiers:  tiers,
		log:    slog.Default(),
		key:    DefaultStorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	payload, err := store.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		// First run, keep the seed record.
	case err != nil:
		return nil, fmt.Errorf("usage: failed to restore state: %w", err)
	default:
		restored, err := DecodeLimits(payload)
		if err != nil {
			s.log.Warn("discarding corrupted usage limits record",
				slog.String("key", s.key),
				slog.String("error", err.Error()))
		} else {
			s.limits = restored
		}
	}

	return s, nil
}

func (s *Service) unlimited() bool {
	return s.tiers.Tier().IsPremium()
}

// persist writes the candidate record before it is committed in memory, so a
// store failure leaves the engine on its previous state.
func (s *Service) persist(ctx context.Context, candidate Limits) error {
	payload, err := candidate.Encode()
	if err != nil {
		return errors.Join(ErrFailedToPersist, err)
	}
	if err := s.store.Set(ctx, s.key, payload); err != nil {
		return errors.Join(ErrFailedToPersist, err)
	}
	return nil
}

// CanAskOracleQuestion reports whether another assistant question is allowed.
func (s *Service) CanAskOracleQuestion() bool {
	if s.unlimited() {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := reconcileOracle(s.limits.Oracle, validate.CurrentDateString(), validate.CurrentMonthString())
	return q.TodayCount < q.DailyLimit
}

// RemainingOracleQuestions returns how many questions are left today, or
// UnlimitedRemaining on premium.
func (s *Service) RemainingOracleQuestions() int {
	if s.unlimited() {
		return UnlimitedRemaining
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := reconcileOracle(s.limits.Oracle, validate.CurrentDateString(), validate.CurrentMonthString())
	return remaining(q.DailyLimit, q.TodayCount)
}

// IncrementOracleQuestion records one asked question. On free tier a due
// rollover is folded into the same commit; over the limit it returns
// ErrLimitExceeded with no mutation. Premium succeeds without touching the
// counter.
func (s *Service) IncrementOracleQuestion(ctx context.Context) error {
	if s.unlimited() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return validate.Atomic(s.log, "increment_oracle_question", func() error {
		q := reconcileOracle(s.limits.Oracle, validate.CurrentDateString(), validate.CurrentMonthString())
		if q.TodayCount >= q.DailyLimit {
			return ErrLimitExceeded
		}

		today, err := validate.SafeIncrement(q.TodayCount, "oracle.todayCount", validate.DefaultMaxCount)
		if err != nil {
			return err
		}
		month, err := validate.SafeIncrement(q.MonthCount, "oracle.monthCount", validate.DefaultMaxCount)
		if err != nil {
			return err
		}
		q.TodayCount = today
		q.MonthCount = month

		candidate := s.limits
		candidate.Oracle = q
		if err := s.persist(ctx, candidate); err != nil {
			return err
		}
		s.limits = candidate
		return nil
	})
}

// CanCreateRecipe reports whether another recipe can be created.
func (s *Service) CanCreateRecipe() bool {
	if s.unlimited() {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.limits.Recipes.CurrentCount < s.limits.Recipes.FreeLimit
}

// RemainingRecipes returns how many recipe slots are left under the lifetime
// free cap, or UnlimitedRemaining on premium.
func (s *Service) RemainingRecipes() int {
	if s.unlimited() {
		return UnlimitedRemaining
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return remaining(s.limits.Recipes.FreeLimit, s.limits.Recipes.CurrentCount)
}

// IncrementRecipe records one created recipe. The free cap is lifetime; there
// is no periodic reset to fold in.
func (s *Service) IncrementRecipe(ctx context.Context) error {
	if s.unlimited() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return validate.Atomic(s.log, "increment_recipe", func() error {
		r := s.limits.Recipes
		if r.CurrentCount >= r.FreeLimit {
			return ErrLimitExceeded
		}

		next, err := validate.SafeIncrement(r.CurrentCount, "recipes.currentCount", validate.DefaultMaxCount)
		if err != nil {
			return err
		}
		r.CurrentCount = next

		candidate := s.limits
		candidate.Recipes = r
		if err := s.persist(ctx, candidate); err != nil {
			return err
		}
		s.limits = candidate
		return nil
	})
}

// CanTrack reports whether meal tracking is allowed. An unstarted trial is
// always allowed; a started one until the elapsed days (inclusive of the
// start day) exceed the free window.
func (s *Service) CanTrack() bool {
	if s.unlimited() {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return canTrackLocked(s.limits.Tracking)
}

func canTrackLocked(tq TrackingQuota) bool {
	if tq.StartDate == "" {
		return true
	}
	elapsed := validate.DaysSince(tq.StartDate)
	if elapsed < 0 {
		// Unreadable marker, treat as not started.
		return true
	}
	return elapsed <= tq.FreeDays
}

// RemainingTrackingDays returns how many trial days are left. The start day
// itself still counts as a full remaining day: a trial started today reports
// the whole window.
func (s *Service) RemainingTrackingDays() int {
	if s.unlimited() {
		return UnlimitedRemaining
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tq := s.limits.Tracking
	if tq.StartDate == "" {
		return tq.FreeDays
	}
	elapsed := validate.DaysSince(tq.StartDate)
	if elapsed < 0 {
		return tq.FreeDays
	}
	return remaining(tq.FreeDays, elapsed-1)
}

// StartTracking marks the trial as started. Calling it again once started is
// a no-op; the start date is set exactly once.
func (s *Service) StartTracking(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limits.Tracking.StartDate != "" {
		return nil
	}

	return validate.Atomic(s.log, "start_tracking", func() error {
		candidate := s.limits
		candidate.Tracking.StartDate = validate.CurrentDateString()
		candidate.Tracking.DaysUsed = 1

		if err := s.persist(ctx, candidate); err != nil {
			return err
		}
		s.limits = candidate
		return nil
	})
}

// IncrementTrackingDay records a tracking action for today. The elapsed-day
// derivation from the start date is the source of truth; DaysUsed is synced
// to it rather than counted independently, so skipped days can never make
// the two diverge. A first call starts the trial. Premium succeeds without
// mutation; an expired trial returns ErrTrialExpired.
func (s *Service) IncrementTrackingDay(ctx context.Context) error {
	if s.unlimited() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return validate.Atomic(s.log, "increment_tracking_day", func() error {
		if !canTrackLocked(s.limits.Tracking) {
			return ErrTrialExpired
		}

		candidate := s.limits
		if candidate.Tracking.StartDate == "" {
			candidate.Tracking.StartDate = validate.CurrentDateString()
			candidate.Tracking.DaysUsed = 1
		} else {
			elapsed := validate.DaysSince(candidate.Tracking.StartDate)
			if err := validate.Count(elapsed, "tracking.daysUsed", validate.DefaultMaxCount); err != nil {
				return err
			}
			candidate.Tracking.DaysUsed = elapsed
		}

		if err := s.persist(ctx, candidate); err != nil {
			return err
		}
		s.limits = candidate
		return nil
	})
}

// Summary returns a read-only snapshot for settings and paywall screens.
func (s *Service) Summary() UsageSummary {
	unlimited := s.unlimited()

	s.mu.Lock()
	defer s.mu.Unlock()

	q := reconcileOracle(s.limits.Oracle, validate.CurrentDateString(), validate.CurrentMonthString())
	summary := UsageSummary{
		QuestionsToday:     q.TodayCount,
		QuestionsThisMonth: q.MonthCount,
		RecipesCreated:     s.limits.Recipes.CurrentCount,
		TrackingDaysUsed:   s.limits.Tracking.DaysUsed,
		Unlimited:          unlimited,
	}

	if unlimited {
		summary.RemainingQuestions = UnlimitedRemaining
		summary.RemainingRecipes = UnlimitedRemaining
		summary.RemainingTracking = UnlimitedRemaining
		return summary
	}

	summary.RemainingQuestions = remaining(q.DailyLimit, q.TodayCount)
	summary.RemainingRecipes = remaining(s.limits.Recipes.FreeLimit, s.limits.Recipes.CurrentCount)

	tq := s.limits.Tracking
	switch elapsed := validate.DaysSince(tq.StartDate); {
	case tq.StartDate == "" || elapsed < 0:
		summary.RemainingTracking = tq.FreeDays
	default:
		summary.RemainingTracking = remaining(tq.FreeDays, elapsed-1)
	}

	return summary
}

// Limits returns a copy of the current record. Intended for diagnostics and
// tests; mutation goes through the increment methods only.
func (s *Service) Limits() Limits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits
}
