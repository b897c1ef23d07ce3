package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/provider"
	"go.uber.org/zap"
)

const (
	defaultScope = "read_only"
	pageSize     = 100
)

// Config configures the Connect platform. APIURL and ConnectURL override the
// Stripe endpoints and are only set in tests.
type Config struct {
	SecretKey   string
	ClientID    string
	RedirectURL string
	Scope       string
	APIURL      string
	ConnectURL  string
}

// ConnectPlatform implements provider.PaymentPlatform on top of Stripe Connect OAuth.
// Every read is made on behalf of the connected account via the Stripe-Account header.
type ConnectPlatform struct {
	api    *client.API
	config Config
	logger *zap.Logger
}

// NewConnectPlatform creates a Stripe Connect platform
func NewConnectPlatform(config Config, logger *zap.Logger) *ConnectPlatform {
	if config.Scope == "" {
		config.Scope = defaultScope
	}

	leveled := logger.Sugar()
	backendConfig := func(url string) *stripe.BackendConfig {
		cfg := &stripe.BackendConfig{
			LeveledLogger:     leveled,
			MaxNetworkRetries: stripe.Int64(0),
		}
		if url != "" {
			cfg.URL = stripe.String(url)
		}
		return cfg
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig(config.APIURL)),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig(config.ConnectURL)),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig("")),
	}

	return &ConnectPlatform{
		api:    client.New(config.SecretKey, backends),
		config: config,
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (p *ConnectPlatform) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

// AuthorizeURL builds the Connect OAuth URL for the given state
func (p *ConnectPlatform) AuthorizeURL(state string) string {
	params := &stripe.AuthorizeURLParams{
		ClientID:     stripe.String(p.config.ClientID),
		ResponseType: stripe.String("code"),
		Scope:        stripe.String(p.config.Scope),
		State:        stripe.String(state),
	}
	if p.config.RedirectURL != "" {
		params.RedirectURI = stripe.String(p.config.RedirectURL)
	}
	return p.api.OAuth.AuthorizeURL(params)
}

// ExchangeCode trades the authorization code for the connected account id
func (p *ConnectPlatform) ExchangeCode(ctx context.Context, code string) (string, error) {
	params := &stripe.OAuthTokenParams{
		GrantType: stripe.String("authorization_code"),
		Code:      stripe.String(code),
		// The oauth client falls back to the global stripe.Key when this is unset.
		ClientSecret: stripe.String(p.config.SecretKey),
	}
	params.Context = ctx

	token, err := p.api.OAuth.New(params)
	if err != nil {
		return "", upstreamError(domainErrors.OpExchangeCode, err)
	}
	if token.StripeUserID == "" {
		return "", domainErrors.NewUpstreamError(domainErrors.OpExchangeCode, "token response without account id", nil)
	}

	p.logger.Info("Stripe OAuth code exchanged",
		zap.String("account_id", token.StripeUserID),
		zap.Bool("livemode", token.Livemode))

	return token.StripeUserID, nil
}

// ListActiveSubscriptions pages through every active subscription with prices and customers expanded
func (p *ConnectPlatform) ListActiveSubscriptions(ctx context.Context, accountID string) ([]entity.SubscriptionSnapshot, error) {
	params := &stripe.SubscriptionListParams{
		Status: stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)
	params.SetStripeAccount(accountID)
	params.AddExpand("data.items.data.price")
	params.AddExpand("data.customer")

	iter := p.api.Subscriptions.List(params)

	var snapshots []entity.SubscriptionSnapshot
	for iter.Next() {
		snapshots = append(snapshots, toSnapshot(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, upstreamError(domainErrors.OpListSubscriptions, err)
	}

	p.logger.Debug("Stripe subscriptions listed",
		zap.String("account_id", accountID),
		zap.Int("count", len(snapshots)))

	return snapshots, nil
}

// ListProducts pages through every active product of the account
func (p *ConnectPlatform) ListProducts(ctx context.Context, accountID string) ([]entity.ExternalProduct, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)
	params.SetStripeAccount(accountID)

	iter := p.api.Products.List(params)

	var products []entity.ExternalProduct
	for iter.Next() {
		prod := iter.Product()
		products = append(products, entity.ExternalProduct{ID: prod.ID, Name: prod.Name})
	}
	if err := iter.Err(); err != nil {
		return nil, upstreamError(domainErrors.OpListProducts, err)
	}

	return products, nil
}

// upstreamError keeps Stripe's own message when the failure came back from the API.
func upstreamError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return domainErrors.NewUpstreamError(op, stripeErr.Msg, err)
	}
	return domainErrors.NewUpstreamError(op, "", err)
}
