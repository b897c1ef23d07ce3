package entity

import "time"

// BillingInterval is the recurring cadence of a subscription line item.
type BillingInterval string

const (
	IntervalDay   BillingInterval = "day"
	IntervalWeek  BillingInterval = "week"
	IntervalMonth BillingInterval = "month"
	IntervalYear  BillingInterval = "year"
)

const SubscriptionStatusTrialing = "trialing"

// SubscriptionSnapshot is a read-only projection of one external subscription at query time.
// It is never persisted.
type SubscriptionSnapshot struct {
	ID                string
	CustomerID        string
	Status            string
	CancelAtPeriodEnd bool
	CanceledAt        *time.Time
	TrialEnd          *time.Time
	CurrentPeriodEnd  time.Time
	Items             []LineItem
}

// LineItem holds amounts in minor currency units.
type LineItem struct {
	ProductID     string
	UnitAmount    int64
	Quantity      int64
	Interval      BillingInterval
	IntervalCount int64
}

// IsTrialing reports whether the subscription is in trial now or has a trial ending in the future.
func (s *SubscriptionSnapshot) IsTrialing(now time.Time) bool {
	if s.Status == SubscriptionStatusTrialing {
		return true
	}
	return s.TrialEnd != nil && s.TrialEnd.After(now)
}

// PeriodElapsed reports whether the current billing period ended before now.
func (s *SubscriptionSnapshot) PeriodElapsed(now time.Time) bool {
	return !s.CurrentPeriodEnd.IsZero() && s.CurrentPeriodEnd.Before(now)
}
