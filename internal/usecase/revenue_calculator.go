package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/provider"
	"go.uber.org/zap"
)

// Exclusion reasons, checked in this order. The first match wins.
const (
	ExcludedCancelAtPeriodEnd = "cancel_at_period_end"
	ExcludedCanceled          = "canceled"
	ExcludedTrialing          = "trialing"
	ExcludedPeriodElapsed     = "period_elapsed"
	ExcludedNoMatchingItems   = "no_matching_items"
	ExcludedNotMonthly        = "not_monthly"
)

var (
	weeksPerMonth = decimal.RequireFromString("4.33")
	daysPerMonth  = decimal.NewFromInt(30)
	monthsPerYear = decimal.NewFromInt(12)
)

// RevenueCalculator reduces a connected account's active subscriptions to a
// monthly recurring revenue figure in minor currency units.
type RevenueCalculator struct {
	platform provider.PaymentPlatform
	logger   *zap.Logger
	now      func() time.Time
}

func NewRevenueCalculator(platform provider.PaymentPlatform, logger *zap.Logger, now func() time.Time) *RevenueCalculator {
	if now == nil {
		now = time.Now
	}
	return &RevenueCalculator{
		platform: platform,
		logger:   logger,
		now:      now,
	}
}

// ComputeMonthlyRevenue returns 0 when nothing qualifies and an error only when
// the platform call fails.
func (c *RevenueCalculator) ComputeMonthlyRevenue(ctx context.Context, accountID string, filterCSV *string) (int64, error) {
	subs, err := c.platform.ListActiveSubscriptions(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	filter := ""
	if filterCSV != nil {
		filter = *filterCSV
	}

	total, excluded := MonthlyRevenue(subs, ParseProductFilter(filter), c.now())

	for subID, reason := range excluded {
		c.logger.Debug("Subscription excluded from MRR",
			zap.String("subscription_id", subID),
			zap.String("reason", reason))
	}

	c.logger.Info("Monthly revenue computed",
		zap.Int("subscriptions", len(subs)),
		zap.Int("excluded", len(excluded)),
		zap.Int64("revenue_cents", total))

	return total, nil
}

// MonthlyRevenue sums the monthly-billed revenue of the qualifying subscriptions.
// accepted is the product filter; an empty set accepts every product.
// The returned map holds the exclusion reason per excluded subscription id.
// The result does not depend on the order of subs.
func MonthlyRevenue(subs []entity.SubscriptionSnapshot, accepted map[string]struct{}, now time.Time) (int64, map[string]string) {
	var total int64
	excluded := make(map[string]string)

	for i := range subs {
		sub := &subs[i]

		if reason := exclusionReason(sub, now); reason != "" {
			excluded[sub.ID] = reason
			continue
		}

		var subtotal int64
		matched, monthly := false, false
		for _, item := range sub.Items {
			if len(accepted) > 0 {
				if _, ok := accepted[item.ProductID]; !ok {
					continue
				}
			}
			matched = true

			// Only monthly-billed items count toward MRR; other cadences are not rescaled into it.
			if item.Interval != entity.IntervalMonth {
				continue
			}
			monthly = true
			subtotal += MonthlyEquivalent(item) * quantityOf(item)
		}

		switch {
		case !matched:
			excluded[sub.ID] = ExcludedNoMatchingItems
		case !monthly:
			excluded[sub.ID] = ExcludedNotMonthly
		default:
			total += subtotal
		}
	}

	return total, excluded
}

func exclusionReason(sub *entity.SubscriptionSnapshot, now time.Time) string {
	switch {
	case sub.CancelAtPeriodEnd:
		return ExcludedCancelAtPeriodEnd
	case sub.CanceledAt != nil:
		return ExcludedCanceled
	case sub.IsTrialing(now):
		return ExcludedTrialing
	case sub.PeriodElapsed(now):
		return ExcludedPeriodElapsed
	}
	return ""
}

// MonthlyEquivalent converts one unit of a line item to a monthly amount,
// rounded half away from zero to a whole minor unit. Unknown intervals yield 0.
func MonthlyEquivalent(item entity.LineItem) int64 {
	count := item.IntervalCount
	if count < 1 {
		count = 1
	}
	amount := decimal.NewFromInt(item.UnitAmount)
	divisor := decimal.NewFromInt(count)

	var monthly decimal.Decimal
	switch item.Interval {
	case entity.IntervalMonth:
		monthly = amount.Div(divisor)
	case entity.IntervalYear:
		monthly = amount.Div(monthsPerYear.Mul(divisor))
	case entity.IntervalWeek:
		monthly = amount.Mul(weeksPerMonth).Div(divisor)
	case entity.IntervalDay:
		monthly = amount.Mul(daysPerMonth).Div(divisor)
	default:
		return 0
	}

	return monthly.Round(0).IntPart()
}

func quantityOf(item entity.LineItem) int64 {
	if item.Quantity < 1 {
		return 1
	}
	return item.Quantity
}

// ParseProductFilter turns a comma separated list into a set. Blank entries are dropped.
func ParseProductFilter(csv string) map[string]struct{} {
	accepted := make(map[string]struct{})
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			accepted[id] = struct{}{}
		}
	}
	return accepted
}

// NormalizeProductFilter trims entries, drops blanks and duplicates, keeps order.
// A filter with no entries normalizes to nil ("count everything").
func NormalizeProductFilter(csv string) *string {
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range strings.Split(csv, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	normalized := strings.Join(ids, ",")
	return &normalized
}
