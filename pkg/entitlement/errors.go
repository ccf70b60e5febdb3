package entitlement

import "errors"

var (
	ErrMissingAPIKey       = errors.New("entitlement provider API key is required")
	ErrMissingCustomerID   = errors.New("entitlement provider customer ID is required")
	ErrMissingProductID    = errors.New("product ID is required")
	ErrInvalidEnvironment  = errors.New("invalid entitlement provider environment")
	ErrProviderUnavailable = errors.New("entitlement provider unavailable")
)
