package entitlement

// Tier is the subscription state gating feature availability. It starts as
// TierLoading and is resolved to free or premium by the Resolver; gates must
// treat TierLoading as free so an unresolved entitlement never opens access.
type Tier string

const (
	TierLoading Tier = "loading"
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// IsPremium reports whether the tier unlocks unlimited quotas.
func (t Tier) IsPremium() bool {
	return t == TierPremium
}

// PremiumEntitlement is the entitlement identifier the resolver consumes.
// Its presence with IsActive in CustomerInfo is the sole premium signal.
const PremiumEntitlement = "premium"

// Entitlement is an externally-managed flag unlocking a feature set.
type Entitlement struct {
	ID        string
	IsActive  bool
	ProductID string
}

// Entitlements holds the active entitlement set from the provider, keyed by
// entitlement identifier.
type Entitlements struct {
	Active map[string]Entitlement
}

// CustomerInfo is the provider's snapshot of the current customer.
type CustomerInfo struct {
	CustomerID   string
	Entitlements Entitlements
}

// HasActivePremium reports whether the snapshot carries an active premium
// entitlement.
func (c CustomerInfo) HasActivePremium() bool {
	ent, ok := c.Entitlements.Active[PremiumEntitlement]
	return ok && ent.IsActive
}

// Offering is a purchasable package the provider currently advertises.
type Offering struct {
	ID          string
	ProductID   string
	PriceLabel  string
	Description string
}

// Offerings is the provider's current catalog, with an optional default
// offering surfaced first in paywall UIs.
type Offerings struct {
	Current []Offering
}

// PurchaseResult is returned by a completed purchase flow.
type PurchaseResult struct {
	CustomerInfo  CustomerInfo
	ProductID     string
	TransactionID string
}
