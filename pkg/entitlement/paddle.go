package entitlement

import (
	"context"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle-backed entitlement provider.
type PaddleConfig struct {
	APIKey           string `env:"PADDLE_API_KEY,required"`
	Environment      string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
	CustomerID       string `env:"PADDLE_CUSTOMER_ID,required"`
	PremiumProductID string `env:"PADDLE_PREMIUM_PRODUCT_ID,required"`
}

// PaddleProvider implements Provider on top of the Paddle Billing API. The
// premium entitlement maps to an active (or trialing) subscription containing
// the configured premium product.
type PaddleProvider struct {
	client *paddle.SDK
	config PaddleConfig
}

// NewPaddleProvider creates a Paddle-backed entitlement provider.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.CustomerID == "" {
		return nil, ErrMissingCustomerID
	}
	if config.PremiumProductID == "" {
		return nil, ErrMissingProductID
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProvider{
		client: client,
		config: config,
	}, nil
}

// CustomerInfo derives the entitlement snapshot from the customer's current
// subscriptions. A subscription counts as premium while it is active or
// trialing and includes the premium product.
func (p *PaddleProvider) CustomerInfo(ctx context.Context) (CustomerInfo, error) {
	info := CustomerInfo{
		CustomerID: p.config.CustomerID,
		Entitlements: Entitlements{
			Active: make(map[string]Entitlement),
		},
	}

	res, err := p.client.SubscriptionsClient.ListSubscriptions(ctx, &paddle.ListSubscriptionsRequest{
		CustomerID: []string{p.config.CustomerID},
	})
	if err != nil {
		return CustomerInfo{}, fmt.Errorf("failed to list paddle subscriptions: %w", err)
	}

	err = res.Iter(ctx, func(sub *paddle.Subscription) (bool, error) {
		if sub.Status != paddle.SubscriptionStatusActive && sub.Status != paddle.SubscriptionStatusTrialing {
			return true, nil
		}
		for _, item := range sub.Items {
			if item.Price.ProductID == p.config.PremiumProductID {
				info.Entitlements.Active[PremiumEntitlement] = Entitlement{
					ID:        PremiumEntitlement,
					IsActive:  true,
					ProductID: p.config.PremiumProductID,
				}
				return false, nil
			}
		}
		return true, nil
	})
	if err != nil {
		return CustomerInfo{}, fmt.Errorf("failed to iterate paddle subscriptions: %w", err)
	}

	return info, nil
}

// Offerings lists the active prices for the premium product as purchasable
// packages.
func (p *PaddleProvider) Offerings(ctx context.Context) (Offerings, error) {
	res, err := p.client.PricesClient.ListPrices(ctx, &paddle.ListPricesRequest{
		ProductID: []string{p.config.PremiumProductID},
	})
	if err != nil {
		return Offerings{}, fmt.Errorf("failed to list paddle prices: %w", err)
	}

	var offerings Offerings
	err = res.Iter(ctx, func(price *paddle.Price) (bool, error) {
		offerings.Current = append(offerings.Current, Offering{
			ID:          price.ID,
			ProductID:   price.ProductID,
			PriceLabel:  price.UnitPrice.Amount + " " + string(price.UnitPrice.CurrencyCode),
			Description: price.Description,
		})
		return true, nil
	})
	if err != nil {
		return Offerings{}, fmt.Errorf("failed to iterate paddle prices: %w", err)
	}

	return offerings, nil
}

// PurchaseProduct creates a catalog transaction for the given price and
// returns the refreshed entitlement snapshot. With Paddle's hosted checkout
// the payment settles out-of-band, so the snapshot reflects premium only once
// the transaction has been completed.
func (p *PaddleProvider) PurchaseProduct(ctx context.Context, productID string) (PurchaseResult, error) {
	if productID == "" {
		return PurchaseResult{}, ErrMissingProductID
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  productID,
		Quantity: 1,
	})

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"customer_id": p.config.CustomerID,
		},
	})
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("failed to create paddle transaction: %w", err)
	}

	info, err := p.CustomerInfo(ctx)
	if err != nil {
		return PurchaseResult{}, err
	}

	return PurchaseResult{
		CustomerInfo:  info,
		ProductID:     productID,
		TransactionID: transaction.ID,
	}, nil
}

// RestorePurchases re-derives the entitlement snapshot from the provider.
// Paddle has no separate restore flow; the subscription list is the source of
// truth.
func (p *PaddleProvider) RestorePurchases(ctx context.Context) (CustomerInfo, error) {
	return p.CustomerInfo(ctx)
}
