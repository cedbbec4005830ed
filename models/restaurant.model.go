package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingConfig drives the optional blocks on printed receipts.
type BillingConfig struct {
	TaxEnabled      bool            `json:"tax_enabled"`
	TaxRate         decimal.Decimal `json:"tax_rate"` // percent, e.g. 16 for 16%
	TaxLabel        string          `json:"tax_label"`
	TipSuggestions  bool            `json:"tip_suggestions"`
	TipPercents     []int           `json:"tip_percents"`
	RegulatoryLines []string        `json:"regulatory_lines"` // e.g. tax id, legal name
}

// Restaurant is a tenant of the platform.
type Restaurant struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Phone       string `json:"phone"` // order notification target
	Address     string `json:"address"`
	City        string `json:"city"`
	Currency    string `json:"currency"` // display symbol, e.g. "$"

	PickupEnabled   bool            `json:"pickup_enabled"`
	DineInEnabled   bool            `json:"dine_in_enabled"`
	DeliveryEnabled bool            `json:"delivery_enabled"`
	DeliveryCost    decimal.Decimal `json:"delivery_cost"`
	MinimumOrder    decimal.Decimal `json:"minimum_order"`
	PrepMinutes     int             `json:"prep_minutes"`

	Billing BillingConfig `json:"billing"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
