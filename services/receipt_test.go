package services

import (
	"testing"

	"platyo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptMinimalBilling(t *testing.T) {
	restaurant, order := notifiableOrder(t)

	ticket := Receipt(restaurant, order)

	assert.Contains(t, ticket, "Testaurant")
	assert.Contains(t, ticket, "ORD-1001")
	assert.Contains(t, ticket, "2x Burger Regular")
	assert.Contains(t, ticket, "$23.00")
	assert.NotContains(t, ticket, "Tax", "tax block only appears when billing enables it")
	assert.NotContains(t, ticket, "Tip", "tip block only appears when billing enables it")
}

func TestReceiptWithBillingConfig(t *testing.T) {
	restaurant, order := notifiableOrder(t)
	restaurant.Billing = models.BillingConfig{
		TaxEnabled:      true,
		TaxRate:         decimal.RequireFromString("16"),
		TaxLabel:        "VAT",
		TipSuggestions:  true,
		TipPercents:     []int{10, 15},
		RegulatoryLines: []string{"Testaurant S.A. de C.V.", "RFC TST010101ABC"},
	}

	ticket := Receipt(restaurant, order)

	assert.Contains(t, ticket, "RFC TST010101ABC")
	// 23.00 * 16 / 116 = 3.17 included VAT.
	assert.Contains(t, ticket, "VAT (16%) incl.")
	assert.Contains(t, ticket, "$3.17")
	assert.Contains(t, ticket, "Tip suggestions:")
	assert.Contains(t, ticket, "10%")
	assert.Contains(t, ticket, "$2.30")
	require.Contains(t, ticket, "TOTAL")
	assert.Contains(t, ticket, "$23.00", "tax line never changes the total")
}

func TestReceiptDeliveryLine(t *testing.T) {
	restaurant := testRestaurant()
	item := cheeseBurgerItem(t, 2)
	customer := pickupCustomer()
	customer.Address = "1 Main St"
	customer.City = "Springfield"

	order, err := BuildOrder(restaurant.ID, []models.CartItem{item}, customer,
		models.FulfillmentDelivery, restaurant.DeliveryCost, nil)
	require.NoError(t, err)

	ticket := Receipt(restaurant, *order)
	assert.Contains(t, ticket, "Delivery")
	assert.Contains(t, ticket, "$3.00")
	assert.Contains(t, ticket, "$26.00")
}
