package stripe

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
)

// toSnapshot maps a Stripe subscription onto the typed snapshot the calculator reads.
// Missing optional fields become zero values or nil pointers here and nowhere else.
func toSnapshot(sub *stripe.Subscription) entity.SubscriptionSnapshot {
	snapshot := entity.SubscriptionSnapshot{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CanceledAt:        unixTime(sub.CanceledAt),
		TrialEnd:          unixTime(sub.TrialEnd),
	}
	if end := unixTime(sub.CurrentPeriodEnd); end != nil {
		snapshot.CurrentPeriodEnd = *end
	}
	if sub.Customer != nil {
		snapshot.CustomerID = sub.Customer.ID
	}

	if sub.Items == nil {
		return snapshot
	}
	for _, item := range sub.Items.Data {
		if item == nil {
			continue
		}
		if lineItem, ok := toLineItem(item); ok {
			snapshot.Items = append(snapshot.Items, lineItem)
		}
	}

	return snapshot
}

func toLineItem(item *stripe.SubscriptionItem) (entity.LineItem, bool) {
	lineItem := entity.LineItem{Quantity: item.Quantity}

	switch {
	case item.Price != nil:
		price := item.Price
		if price.Product != nil {
			lineItem.ProductID = price.Product.ID
		}
		lineItem.UnitAmount = unitAmount(price.UnitAmount, price.UnitAmountDecimal)
		if price.Recurring != nil {
			lineItem.Interval = entity.BillingInterval(price.Recurring.Interval)
			lineItem.IntervalCount = price.Recurring.IntervalCount
		}
	case item.Plan != nil:
		plan := item.Plan
		if plan.Product != nil {
			lineItem.ProductID = plan.Product.ID
		}
		lineItem.UnitAmount = unitAmount(plan.Amount, plan.AmountDecimal)
		lineItem.Interval = entity.BillingInterval(plan.Interval)
		lineItem.IntervalCount = plan.IntervalCount
	default:
		return lineItem, false
	}

	return lineItem, lineItem.ProductID != ""
}

// unitAmount prefers the integer amount and falls back to the sub-cent decimal amount.
func unitAmount(amount int64, amountDecimal float64) int64 {
	if amount != 0 || amountDecimal == 0 {
		return amount
	}
	return decimal.NewFromFloat(amountDecimal).Round(0).IntPart()
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
