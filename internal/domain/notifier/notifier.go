package notifier

import (
	"context"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
)

// Notifier hands revenue events to the transactional email pipeline.
type Notifier interface {
	Notify(ctx context.Context, event entity.RevenueEvent) error
}
