package provider

import (
	"context"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
)

// PaymentPlatform is the capability the revenue engine needs from a payment platform
// that makers connect through OAuth (Stripe Connect).
type PaymentPlatform interface {
	// AuthorizeURL builds the OAuth authorization URL carrying the given state token
	AuthorizeURL(state string) string

	// ExchangeCode trades an authorization code for a durable connected-account id
	ExchangeCode(ctx context.Context, code string) (string, error)

	// ListActiveSubscriptions enumerates every subscription in status active on the account
	ListActiveSubscriptions(ctx context.Context, accountID string) ([]entity.SubscriptionSnapshot, error)

	// ListProducts enumerates the active products on the account
	ListProducts(ctx context.Context, accountID string) ([]entity.ExternalProduct, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// ProviderType represents the type of payment provider
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
)
