// Package nutrikit is the client-side state layer of a nutrition-tracking
// product: tier-gated usage limits, entitlement resolution and a cached,
// fallback-protected AI-assistant pipeline.
//
// The heavy lifting lives in the sub-packages:
//
//   - pkg/validate: input validation guarding every quota mutation
//   - pkg/usage: the date-aware usage-limit engine
//   - pkg/entitlement: subscription-tier resolution over a billing provider
//   - pkg/oracle: chatbot client, response cache and local fallback
//   - pkg/kv: the key-value persistence contract (memory and Redis)
//   - pkg/config: env-based configuration loading
//
// This package only assembles them:
//
//	cfg, err := nutrikit.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	state, err := nutrikit.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	if answer, ok := state.AskOracle(ctx, question); ok {
//	    show(answer.Text)
//	}
package nutrikit
