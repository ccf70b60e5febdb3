package entitlement

import (
	"context"
	"log/slog"
	"sync"
)

// Resolver owns the tier value for the running app. It derives the tier from
// provider snapshots and exposes the purchase/restore operations that mutate
// it. Provider failures never escape: every failure path resolves to the free
// tier or a false result, so a billing outage degrades features instead of
// blocking the app.
type Resolver struct {
	mu        sync.RWMutex
	tier      Tier
	offerings Offerings
	provider  Provider
	log       *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for boundary failures.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a Resolver in the loading tier. Panics if provider is
// nil to fail fast during initialization.
func NewResolver(provider Provider, opts ...ResolverOption) *Resolver {
	if provider == nil {
		panic("entitlement: Provider is required")
	}

	r := &Resolver{
		tier:     TierLoading,
		provider: provider,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Tier returns the currently resolved tier.
func (r *Resolver) Tier() Tier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tier
}

// Offerings returns the catalog snapshot taken during Initialize. Empty until
// initialization completes.
func (r *Resolver) Offerings() Offerings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.offerings
}

// Initialize queries the provider for the current customer snapshot and the
// purchasable catalog, then resolves the tier. Any failure resolves to the
// free tier rather than leaving the app stuck in loading.
func (r *Resolver) Initialize(ctx context.Context) {
	info, err := r.provider.CustomerInfo(ctx)
	if err != nil {
		r.log.Warn("entitlement check failed, defaulting to free tier",
			slog.String("error", err.Error()))
		r.setTier(TierFree)
		return
	}

	offerings, err := r.provider.Offerings(ctx)
	if err != nil {
		// Missing catalog only breaks the paywall display, not gating.
		r.log.Warn("failed to fetch offerings", slog.String("error", err.Error()))
	} else {
		r.mu.Lock()
		r.offerings = offerings
		r.mu.Unlock()
	}

	r.setTier(tierFor(info))
}

// Purchase runs the provider purchase flow for productID. Returns true and
// flips the tier to premium only when the resulting snapshot carries an
// active premium entitlement. Rejections, cancellations and provider errors
// all return false with the tier unchanged.
func (r *Resolver) Purchase(ctx context.Context, productID string) bool {
	if productID == "" {
		r.log.Warn("purchase requested without product ID")
		return false
	}

	result, err := r.provider.PurchaseProduct(ctx, productID)
	if err != nil {
		r.log.Info("purchase did not complete",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))
		return false
	}

	if !result.CustomerInfo.HasActivePremium() {
		return false
	}

	r.setTier(TierPremium)
	r.log.Info("purchase completed",
		slog.String("product_id", result.ProductID),
		slog.String("transaction_id", result.TransactionID))
	return true
}

// Restore re-fetches previously bought entitlements. Returns true and sets
// the premium tier only when a qualifying entitlement is found; otherwise the
// tier is left unchanged.
func (r *Resolver) Restore(ctx context.Context) bool {
	info, err := r.provider.RestorePurchases(ctx)
	if err != nil {
		r.log.Info("restore did not complete", slog.String("error", err.Error()))
		return false
	}

	if !info.HasActivePremium() {
		return false
	}

	r.setTier(TierPremium)
	return true
}

func (r *Resolver) setTier(tier Tier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tier = tier
}

func tierFor(info CustomerInfo) Tier {
	if info.HasActivePremium() {
		return TierPremium
	}
	return TierFree
}
