package provider

import (
	"fmt"

	"github.com/wekeepgrowing/launch-revenue/internal/config"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/provider"
	stripeProvider "github.com/wekeepgrowing/launch-revenue/internal/infrastructure/provider/stripe"
	"go.uber.org/zap"
)

// Factory creates payment platforms based on the provider type
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetPlatform returns a payment platform based on the provider type
func (f *Factory) GetPlatform(providerType provider.ProviderType) (provider.PaymentPlatform, error) {
	switch providerType {
	case provider.ProviderTypeStripe:
		return f.createStripePlatform()
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// GetPlatformFromString returns a payment platform from a string type
func (f *Factory) GetPlatformFromString(providerStr string) (provider.PaymentPlatform, error) {
	// Stripe is the only platform makers can connect today
	if providerStr == "" {
		providerStr = string(provider.ProviderTypeStripe)
	}

	return f.GetPlatform(provider.ProviderType(providerStr))
}

func (f *Factory) createStripePlatform() (provider.PaymentPlatform, error) {
	stripeCfg := f.config.Service.Stripe
	if stripeCfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key not configured")
	}
	if stripeCfg.ConnectClientID == "" {
		return nil, fmt.Errorf("stripe connect client id not configured")
	}

	return stripeProvider.NewConnectPlatform(stripeProvider.Config{
		SecretKey:   stripeCfg.SecretKey,
		ClientID:    stripeCfg.ConnectClientID,
		RedirectURL: stripeCfg.RedirectURL,
		Scope:       stripeCfg.Scope,
	}, f.logger), nil
}
