package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a product by ID. Ids that are not uuids cannot exist and return nil.
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var product model.Product
	err = r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get product",
			zap.String("product_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toEntity(&product), nil
}

// SaveConnection writes the account and the verification pair in one UPDATE.
// A nil verification nulls the pair so a previous account's figure never survives a relink.
func (r *productRepository) SaveConnection(ctx context.Context, id, accountID string, verification *entity.Verification) error {
	updates := map[string]interface{}{
		"stripe_account_id":  accountID,
		"verified_mrr_cents": nil,
		"mrr_verified_at":    nil,
	}
	if verification != nil {
		updates["verified_mrr_cents"] = verification.RevenueCents
		updates["mrr_verified_at"] = verification.VerifiedAt
	}

	return r.update(ctx, "save connection", id, updates)
}

// SaveVerification overwrites the verification pair
func (r *productRepository) SaveVerification(ctx context.Context, id string, verification entity.Verification) error {
	return r.update(ctx, "save verification", id, map[string]interface{}{
		"verified_mrr_cents": verification.RevenueCents,
		"mrr_verified_at":    verification.VerifiedAt,
	})
}

// SaveFilter stores the product filter; nil writes NULL
func (r *productRepository) SaveFilter(ctx context.Context, id string, filter *string) error {
	return r.update(ctx, "save filter", id, map[string]interface{}{
		"stripe_product_filter": filter,
	})
}

// ClearConnection nulls the account and verification columns together
func (r *productRepository) ClearConnection(ctx context.Context, id string) error {
	return r.update(ctx, "clear connection", id, map[string]interface{}{
		"stripe_account_id":  nil,
		"verified_mrr_cents": nil,
		"mrr_verified_at":    nil,
	})
}

// Ping checks the database connection
func (r *productRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *productRepository) update(ctx context.Context, op, id string, updates map[string]interface{}) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return domainErrors.ErrProductNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(updates)

	if result.Error != nil {
		r.logger.Error("Failed to update product",
			zap.String("op", op),
			zap.String("product_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to %s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrProductNotFound
	}

	return nil
}

func toEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		ID:                   m.ID.String(),
		OwnerID:              m.OwnerID.String(),
		Name:                 m.Name,
		ConnectedAccountID:   m.StripeAccountID,
		ProductFilter:        m.StripeProductFilter,
		VerifiedRevenueCents: m.VerifiedMRRCents,
		VerifiedAt:           m.MRRVerifiedAt,
	}
}
