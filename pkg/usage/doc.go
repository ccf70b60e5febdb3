// Package usage implements the usage-limit engine: three independent,
// date-aware quotas (daily assistant questions, lifetime recipe creations,
// meal-tracking trial days) gated by the subscription tier.
//
// Every quota follows the same pattern: check the tier, reconcile any due
// rollover into a fresh copy, compare against the limit, then commit the
// mutation and persist it in one step. Rollovers are lazy; nothing runs on a
// timer. The daily question counter resets when the stored reset date is no
// longer the current UTC date, the recipe cap never resets, and the tracking
// trial derives from elapsed days since its start date.
//
//	svc, err := usage.NewService(ctx, store, resolver)
//	if err != nil {
//	    return err
//	}
//
//	if svc.CanAskOracleQuestion() {
//	    answer := oracleSvc.Ask(ctx, question)
//	    _ = svc.IncrementOracleQuestion(ctx)
//	    show(answer, svc.RemainingOracleQuestions())
//	}
//
// Premium short-circuits every gate; the loading tier gates like free so an
// unresolved entitlement stays restrictive. Increments past a free-tier limit
// return ErrLimitExceeded and leave both memory and the store untouched.
package usage
