package entity

import "time"

// Product is the subset of a marketplace product the revenue engine reads and writes.
type Product struct {
	ID                   string     `json:"id"`
	OwnerID              string     `json:"owner_id"`
	Name                 string     `json:"name"`
	ConnectedAccountID   *string    `json:"-"`
	ProductFilter        *string    `json:"product_filter,omitempty"`
	VerifiedRevenueCents *int64     `json:"verified_revenue_cents,omitempty"`
	VerifiedAt           *time.Time `json:"verified_at,omitempty"`
}

// IsOwnedBy reports whether userID owns the product. An empty userID never owns anything.
func (p *Product) IsOwnedBy(userID string) bool {
	return userID != "" && p.OwnerID == userID
}

func (p *Product) IsConnected() bool {
	return p.ConnectedAccountID != nil && *p.ConnectedAccountID != ""
}

// Verification is one atomic verification event: the figure and the time it was computed.
type Verification struct {
	RevenueCents int64     `json:"verified_revenue_cents"`
	VerifiedAt   time.Time `json:"verified_at"`
}

// RevenueStatus is the public view of a product's verified revenue.
// It never carries the connected account id.
type RevenueStatus struct {
	ProductID            string     `json:"product_id"`
	Connected            bool       `json:"connected"`
	ProductFilter        *string    `json:"product_filter"`
	VerifiedRevenueCents *int64     `json:"verified_revenue_cents"`
	VerifiedAt           *time.Time `json:"verified_at"`
}

// LinkResult is returned by a completed account link.
type LinkResult struct {
	ProductID            string     `json:"product_id"`
	ConnectedAccountID   string     `json:"connected_account_id"`
	VerifiedRevenueCents *int64     `json:"verified_revenue_cents"`
	VerifiedAt           *time.Time `json:"verified_at"`
}
