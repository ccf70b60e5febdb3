// Package entitlement resolves the subscription tier that gates feature
// access throughout the state layer.
//
// The Resolver starts in TierLoading and settles to TierFree or TierPremium
// once the external provider answers (or fails; failures resolve to free so a
// billing outage never blocks the app). Purchase and restore operations
// mutate the tier and report plain booleans; provider errors are logged at
// this boundary and never surfaced to callers.
//
//	provider, err := entitlement.NewPaddleProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	resolver := entitlement.NewResolver(provider)
//	resolver.Initialize(ctx)
//
//	if resolver.Tier().IsPremium() {
//	    // unlimited quotas
//	}
//
// The Provider interface keeps the resolver vendor-neutral; PaddleProvider is
// the shipped implementation and tests plug in their own.
package entitlement
