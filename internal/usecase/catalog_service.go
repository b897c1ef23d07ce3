package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/provider"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
)

// CatalogService lists the products of the connected account for the filter picker.
type CatalogService struct {
	productRepo repository.ProductRepository
	platform    provider.PaymentPlatform
	logger      *zap.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, platform provider.PaymentPlatform, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		platform:    platform,
		logger:      logger,
	}
}

// ListCatalog returns every active product of the account, most subscribed first.
// Counts cover the whole account and ignore the product's own filter.
func (s *CatalogService) ListCatalog(ctx context.Context, productID, userID string) ([]entity.CatalogEntry, error) {
	product, err := loadOwnedProduct(ctx, s.productRepo, productID, userID)
	if err != nil {
		return nil, err
	}
	if !product.IsConnected() {
		return nil, domainErrors.ErrNotConnected
	}
	accountID := *product.ConnectedAccountID

	products, err := s.platform.ListProducts(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	subs, err := s.platform.ListActiveSubscriptions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	entries := BuildCatalog(products, subs)

	s.logger.Debug("Catalog listed",
		zap.String("product_id", product.ID),
		zap.Int("products", len(entries)),
		zap.Int("subscriptions", len(subs)))

	return entries, nil
}

// BuildCatalog counts line item references per product id and sorts by count descending.
// Ties are broken by name, then id, so the order is stable across calls.
func BuildCatalog(products []entity.ExternalProduct, subs []entity.SubscriptionSnapshot) []entity.CatalogEntry {
	counts := make(map[string]int)
	for _, sub := range subs {
		for _, item := range sub.Items {
			counts[item.ProductID]++
		}
	}

	entries := make([]entity.CatalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, entity.CatalogEntry{
			ExternalID:              p.ID,
			Name:                    p.Name,
			ActiveSubscriptionCount: counts[p.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ActiveSubscriptionCount != b.ActiveSubscriptionCount {
			return a.ActiveSubscriptionCount > b.ActiveSubscriptionCount
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ExternalID < b.ExternalID
	})

	return entries
}
