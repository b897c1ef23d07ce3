package repository

import (
	"context"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
)

// ProductRepository persists the revenue fields of a product.
// Every write returns ErrProductNotFound when no row matches.
type ProductRepository interface {
	// GetByID returns nil, nil when the product does not exist
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// SaveConnection stores the connected account and the verification pair in one write.
	// A nil verification clears the pair.
	SaveConnection(ctx context.Context, id, accountID string, verification *entity.Verification) error

	// SaveVerification overwrites the verification pair (last write wins)
	SaveVerification(ctx context.Context, id string, verification entity.Verification) error

	// SaveFilter stores the product filter; nil clears it
	SaveFilter(ctx context.Context, id string, filter *string) error

	// ClearConnection clears the connected account and the verification pair, keeping the filter
	ClearConnection(ctx context.Context, id string) error

	// Ping checks the underlying store is reachable
	Ping(ctx context.Context) error
}
