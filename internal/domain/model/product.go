package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is the products row. Only the revenue columns are owned by this service.
type Product struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID             uuid.UUID  `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	Name                string     `gorm:"size:255" json:"name"`
	StripeAccountID     *string    `gorm:"column:stripe_account_id;size:100" json:"-"`
	StripeProductFilter *string    `gorm:"column:stripe_product_filter;type:text" json:"stripe_product_filter,omitempty"`
	VerifiedMRRCents    *int64     `gorm:"column:verified_mrr_cents" json:"verified_mrr_cents,omitempty"`
	MRRVerifiedAt       *time.Time `gorm:"column:mrr_verified_at" json:"mrr_verified_at,omitempty"`
	CreatedAt           time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}
