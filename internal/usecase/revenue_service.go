package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/notifier"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
)

// RevenueService keeps a product's verified revenue current: refresh, filter changes and disconnect.
type RevenueService struct {
	productRepo repository.ProductRepository
	calculator  *RevenueCalculator
	notifier    notifier.Notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewRevenueService(
	productRepo repository.ProductRepository,
	calculator *RevenueCalculator,
	notifier notifier.Notifier,
	logger *zap.Logger,
	now func() time.Time,
) *RevenueService {
	if now == nil {
		now = time.Now
	}
	return &RevenueService{
		productRepo: productRepo,
		calculator:  calculator,
		notifier:    notifier,
		logger:      logger,
		now:         now,
	}
}

// Refresh recomputes the figure with the product's current filter and overwrites the stored pair.
func (s *RevenueService) Refresh(ctx context.Context, productID, userID string) (*entity.Verification, error) {
	product, err := loadOwnedProduct(ctx, s.productRepo, productID, userID)
	if err != nil {
		return nil, err
	}
	if !product.IsConnected() {
		return nil, domainErrors.ErrNotConnected
	}

	return s.verify(ctx, product, product.ProductFilter, userID)
}

// SetFilter stores the filter and, when an account is connected, recomputes with it.
// It returns nil when there is nothing to compute yet.
func (s *RevenueService) SetFilter(ctx context.Context, productID, userID, filterCSV string) (*entity.Verification, error) {
	product, err := loadOwnedProduct(ctx, s.productRepo, productID, userID)
	if err != nil {
		return nil, err
	}

	filter := NormalizeProductFilter(filterCSV)
	if err := s.productRepo.SaveFilter(ctx, product.ID, filter); err != nil {
		return nil, fmt.Errorf("failed to save product filter: %w", err)
	}

	s.logger.Info("Product filter updated",
		zap.String("product_id", product.ID),
		zap.Stringp("filter", filter))

	if !product.IsConnected() {
		return nil, nil
	}

	return s.verify(ctx, product, filter, userID)
}

// Disconnect clears the account and the verification pair. The filter is kept.
// Disconnecting an unconnected product does nothing.
func (s *RevenueService) Disconnect(ctx context.Context, productID, userID string) error {
	product, err := loadOwnedProduct(ctx, s.productRepo, productID, userID)
	if err != nil {
		return err
	}
	if !product.IsConnected() && product.VerifiedRevenueCents == nil && product.VerifiedAt == nil {
		return nil
	}

	if err := s.productRepo.ClearConnection(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to clear connection: %w", err)
	}

	s.logger.Info("Payment account disconnected",
		zap.String("product_id", product.ID),
		zap.String("user_id", userID))

	notify(ctx, s.notifier, s.logger, entity.RevenueEvent{
		Type:       entity.EventAccountDisconnected,
		ProductID:  product.ID,
		UserID:     userID,
		OccurredAt: s.now().UTC(),
	})

	return nil
}

// GetStatus is the public read of a product's verified revenue. No ownership check.
func (s *RevenueService) GetStatus(ctx context.Context, productID string) (*entity.RevenueStatus, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, domainErrors.ErrProductNotFound
	}

	return &entity.RevenueStatus{
		ProductID:            product.ID,
		Connected:            product.IsConnected(),
		ProductFilter:        product.ProductFilter,
		VerifiedRevenueCents: product.VerifiedRevenueCents,
		VerifiedAt:           product.VerifiedAt,
	}, nil
}

func (s *RevenueService) verify(ctx context.Context, product *entity.Product, filter *string, userID string) (*entity.Verification, error) {
	revenue, err := s.calculator.ComputeMonthlyRevenue(ctx, *product.ConnectedAccountID, filter)
	if err != nil {
		return nil, err
	}

	verification := entity.Verification{RevenueCents: revenue, VerifiedAt: s.now().UTC()}
	if err := s.productRepo.SaveVerification(ctx, product.ID, verification); err != nil {
		return nil, fmt.Errorf("failed to save verification: %w", err)
	}

	s.logger.Info("Revenue verified",
		zap.String("product_id", product.ID),
		zap.Int64("revenue_cents", revenue))

	notify(ctx, s.notifier, s.logger, entity.RevenueEvent{
		Type:         entity.EventRevenueVerified,
		ProductID:    product.ID,
		UserID:       userID,
		RevenueCents: &verification.RevenueCents,
		OccurredAt:   verification.VerifiedAt,
	})

	return &verification, nil
}
