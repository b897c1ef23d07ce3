package database

import (
	"github.com/wekeepgrowing/launch-revenue/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate makes sure the revenue columns exist on the products table.
// The table itself belongs to the marketplace; AutoMigrate only adds missing columns.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	if err := db.AutoMigrate(&model.Product{}); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// Public listings sort by verified revenue
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_products_verified_mrr ON products (verified_mrr_cents DESC) WHERE verified_mrr_cents IS NOT NULL`).Error; err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
