package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"updatedAt"`
}

// DefaultCurrency is the currency invoices are raised in unless stated otherwise.
const DefaultCurrency = "NPR"
