package entitlement

import "context"

// Provider abstracts the external purchase/entitlement service. This keeps
// the resolver vendor-neutral: the Paddle adapter in this package is one
// implementation, and tests supply their own.
//
// Implementations should use official provider SDKs and keep provider quirks
// (customer ID mapping, sandbox environments) internal.
type Provider interface {
	// CustomerInfo returns the current entitlement snapshot for the customer.
	CustomerInfo(ctx context.Context) (CustomerInfo, error)

	// Offerings returns the purchasable catalog currently advertised.
	Offerings(ctx context.Context) (Offerings, error)

	// PurchaseProduct runs the provider's purchase flow for productID and
	// returns the resulting customer snapshot. A user-cancelled purchase is
	// an error like any other.
	PurchaseProduct(ctx context.Context, productID string) (PurchaseResult, error)

	// RestorePurchases re-fetches previously bought entitlements.
	RestorePurchases(ctx context.Context) (CustomerInfo, error)
}
