// Package oracle provides the AI-assistant answer pipeline: a size-bounded,
// time-boxed response cache, a resilient HTTP client for the chatbot
// endpoint, and a deterministic local fallback responder.
//
// Ask consults the cache, then the live endpoint, then the fallback
// responder, in that order. Live calls carry a 20-second
// timeout and run behind a circuit breaker; there are no automatic retries.
// When the endpoint errors, times out, or the breaker is open, the embedded
// keyword-matched rule table answers instead, so the user always receives
// something. Quota gating lives in the usage package; callers check the gate
// before Ask and report the increment after.
//
//	client, err := oracle.NewClient(cfg.Endpoint)
//	if err != nil {
//	    return err
//	}
//	svc := oracle.NewService(client)
//
//	answer := svc.Ask(ctx, "how much protein do I need?")
//	show(answer.Text) // answer.Source tells cache/live/fallback apart
package oracle
