package entity

// ExternalProduct is an active product in the connected payment account.
type ExternalProduct struct {
	ID   string
	Name string
}

// CatalogEntry annotates an external product with its live subscriber count.
type CatalogEntry struct {
	ExternalID              string `json:"external_id"`
	Name                    string `json:"name"`
	ActiveSubscriptionCount int    `json:"active_subscription_count"`
}
