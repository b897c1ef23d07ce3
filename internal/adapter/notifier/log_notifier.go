package notifier

import (
	"context"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainNotifier "github.com/wekeepgrowing/launch-revenue/internal/domain/notifier"
	"go.uber.org/zap"
)

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier is used when Redis is disabled; events only reach the log.
func NewLogNotifier(logger *zap.Logger) domainNotifier.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(_ context.Context, event entity.RevenueEvent) error {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.String("product_id", event.ProductID),
		zap.String("user_id", event.UserID),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.RevenueCents != nil {
		fields = append(fields, zap.Int64("revenue_cents", *event.RevenueCents))
	}

	n.logger.Info("Revenue event", fields...)
	return nil
}
