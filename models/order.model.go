package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transition exists from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Fulfillment is how the customer receives the order.
type Fulfillment string

const (
	FulfillmentPickup   Fulfillment = "pickup"
	FulfillmentDineIn   Fulfillment = "dine_in"
	FulfillmentDelivery Fulfillment = "delivery"
)

// CustomerInfo is the contact snapshot embedded in an order.
type CustomerInfo struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	TableNumber  string `json:"table_number,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// OrderIngredient is a frozen copy of an ingredient as it was at order time.
type OrderIngredient struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Optional  bool            `json:"optional"`
	ExtraCost decimal.Decimal `json:"extra_cost"`
}

// OrderItem is a frozen copy of a cart row. It carries its own names and
// prices so later catalog edits never change what was sold.
type OrderItem struct {
	ProductID      string            `json:"product_id"`
	ProductName    string            `json:"product_name"`
	VariationID    string            `json:"variation_id"`
	VariationName  string            `json:"variation_name"`
	VariationPrice decimal.Decimal   `json:"variation_price"`
	Ingredients    []OrderIngredient `json:"ingredients"`
	Quantity       int               `json:"quantity"`
	Notes          string            `json:"notes,omitempty"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	Total          decimal.Decimal   `json:"total"`
}

// Order is a placed order. Prices are immutable after creation; only the
// embedded customer contact fields may be patched, via the contact-info
// correction operation.
type Order struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurant_id"`
	OrderNumber  string          `json:"order_number"`
	Customer     CustomerInfo    `json:"customer"`
	Items        []OrderItem     `json:"items"`
	Fulfillment  Fulfillment     `json:"fulfillment"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryCost decimal.Decimal `json:"delivery_cost"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	Notified     bool            `json:"notified"` // first notification already sent
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
