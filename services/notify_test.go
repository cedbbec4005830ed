package services

import (
	"strings"
	"testing"

	"platyo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notifiableOrder(t *testing.T) (models.Restaurant, models.Order) {
	t.Helper()
	restaurant := testRestaurant()
	item := cheeseBurgerItem(t, 2)
	item.Notes = "extra napkins"

	order, err := BuildOrder(restaurant.ID, []models.CartItem{item}, pickupCustomer(),
		models.FulfillmentPickup, decimal.Zero, nil)
	require.NoError(t, err)
	return restaurant, *order
}

func TestOrderMessage(t *testing.T) {
	restaurant, order := notifiableOrder(t)

	msg := OrderMessage(restaurant, order)

	assert.Contains(t, msg, "Testaurant")
	assert.Contains(t, msg, "ORD-1001")
	assert.Contains(t, msg, "Ada")
	assert.Contains(t, msg, "Pickup")
	assert.Contains(t, msg, "2x Burger (Regular) - $23.00")
	assert.Contains(t, msg, "+ Extra cheese ($1.50)")
	assert.Contains(t, msg, "Note: extra napkins")
	assert.Contains(t, msg, "Subtotal: $23.00")
	assert.Contains(t, msg, "Total: $23.00")
	assert.Contains(t, msg, "Estimated prep time: 20 min")
	assert.NotContains(t, msg, "Delivery:", "pickup orders carry no delivery line")
	assert.NotContains(t, msg, "<", "payload is plain text, not HTML")
}

func TestStatusUpdateMessageIsShortVariant(t *testing.T) {
	restaurant, order := notifiableOrder(t)
	order.Status = models.StatusReady

	short := StatusUpdateMessage(restaurant, order)
	assert.Contains(t, short, "ORD-1001")
	assert.Contains(t, short, "ready")
	assert.Less(t, len(short), len(OrderMessage(restaurant, order)))
}

func TestNotificationMessagePicksVariant(t *testing.T) {
	restaurant, order := notifiableOrder(t)

	assert.Equal(t, OrderMessage(restaurant, order), NotificationMessage(restaurant, order))
	order.Notified = true
	assert.Equal(t, StatusUpdateMessage(restaurant, order), NotificationMessage(restaurant, order))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+1 (555) 000-1111", "Order ORD-1001 & fries")
	assert.Equal(t, "https://wa.me/15550001111?text=Order+ORD-1001+%26+fries", link)
}

func TestCustomerOrderLinkTargetsRestaurantPhone(t *testing.T) {
	restaurant, order := notifiableOrder(t)

	link := CustomerOrderLink(restaurant, order)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/15550001111?text="),
		"link must address the restaurant's phone, got %s", link)
	assert.Contains(t, link, "ORD-1001")
}
