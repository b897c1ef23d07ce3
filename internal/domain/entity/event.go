package entity

import "time"

type RevenueEventType string

const (
	EventAccountConnected    RevenueEventType = "account_connected"
	EventRevenueVerified     RevenueEventType = "revenue_verified"
	EventAccountDisconnected RevenueEventType = "account_disconnected"
)

// RevenueEvent is handed to the notification sink after a successful operation.
type RevenueEvent struct {
	Type         RevenueEventType `json:"type"`
	ProductID    string           `json:"product_id"`
	UserID       string           `json:"user_id"`
	RevenueCents *int64           `json:"revenue_cents,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
