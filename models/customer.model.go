package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer segments derived from order count. VIP is an orthogonal tag, not
// a segment.
const (
	SegmentNew      = "new"
	SegmentRegular  = "regular"
	SegmentFrequent = "frequent"
)

// CustomerSummary is a derived per-phone view over a restaurant's order
// history plus the VIP side list. It is never stored.
type CustomerSummary struct {
	Phone        string          `json:"phone"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Address      string          `json:"address,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
	TotalOrders  int             `json:"total_orders"`
	TotalSpent   decimal.Decimal `json:"total_spent"` // delivered orders only
	LastOrderAt  time.Time       `json:"last_order_at"`
	Fulfillments []Fulfillment   `json:"fulfillments"`
	VIP          bool            `json:"vip"`
	Segment      string          `json:"segment"`
}

// ImportedCustomer is a contact imported via CSV before any order exists for
// its phone. The aggregation view unions these in as zero-order customers.
type ImportedCustomer struct {
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
