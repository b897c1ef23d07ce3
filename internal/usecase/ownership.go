package usecase

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/notifier"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
)

// loadOwnedProduct is the ownership gate shared by every operation.
// An anonymous caller is rejected before the store is touched.
func loadOwnedProduct(ctx context.Context, repo repository.ProductRepository, productID, userID string) (*entity.Product, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}

	product, err := repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, domainErrors.ErrProductNotFound
	}
	if !product.IsOwnedBy(userID) {
		return nil, domainErrors.ErrUnauthorized
	}

	return product, nil
}

// notify is best effort: a failed publish is logged and never fails the operation.
func notify(ctx context.Context, n notifier.Notifier, logger *zap.Logger, event entity.RevenueEvent) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, event); err != nil {
		logger.Warn("Failed to publish revenue event",
			zap.String("type", string(event.Type)),
			zap.String("product_id", event.ProductID),
			zap.Error(err))
	}
}
