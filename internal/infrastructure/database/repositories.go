package database

import (
	"github.com/wekeepgrowing/launch-revenue/internal/adapter/repository"
	domainRepo "github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Product domainRepo.ProductRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Product: repository.NewProductRepository(db, logger),
	}
}
