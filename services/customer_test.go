package services

import (
	"context"
	"testing"
	"time"

	"platyo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func orderFor(phone string, status models.OrderStatus, total string, at time.Time, f models.Fulfillment) models.Order {
	return models.Order{
		ID:           phone + "-" + at.String(),
		RestaurantID: "r1",
		Customer:     models.CustomerInfo{Name: "Ada", Phone: phone},
		Status:       status,
		Total:        decimal.RequireFromString(total),
		Fulfillment:  f,
		CreatedAt:    at,
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("555 123 4567"))
	assert.Equal(t, "", NormalizePhone("n/a"))
}

func TestSegment(t *testing.T) {
	assert.Equal(t, models.SegmentNew, Segment(1))
	assert.Equal(t, models.SegmentRegular, Segment(2))
	assert.Equal(t, models.SegmentRegular, Segment(4))
	assert.Equal(t, models.SegmentFrequent, Segment(5))
	assert.Equal(t, models.SegmentFrequent, Segment(12))
}

func TestAggregateCustomers(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		orderFor("555 1111", models.StatusDelivered, "20.00", now.Add(-3*time.Hour), models.FulfillmentPickup),
		orderFor("5551111", models.StatusDelivered, "30.00", now.Add(-2*time.Hour), models.FulfillmentDelivery),
		orderFor("(555) 1111", models.StatusCancelled, "99.00", now.Add(-1*time.Hour), models.FulfillmentPickup),
		orderFor("5552222", models.StatusPending, "15.00", now, models.FulfillmentDineIn),
	}

	summaries := AggregateCustomers(orders, nil, []string{"555 2222"})
	require.Len(t, summaries, 2)

	// Sorted newest-first: 5552222 ordered last.
	second := summaries[0]
	assert.Equal(t, "5552222", second.Phone)
	assert.Equal(t, 1, second.TotalOrders)
	assert.True(t, second.TotalSpent.IsZero(), "pending orders do not count toward spend")
	assert.True(t, second.VIP)
	assert.Equal(t, models.SegmentNew, second.Segment, "VIP is orthogonal to segment")

	first := summaries[1]
	assert.Equal(t, "5551111", first.Phone, "phone formats normalize to one customer")
	assert.Equal(t, 3, first.TotalOrders)
	assert.True(t, first.TotalSpent.Equal(decimal.RequireFromString("50.00")),
		"spend counts delivered orders only, got %s", first.TotalSpent)
	assert.Equal(t, models.SegmentRegular, first.Segment)
	assert.ElementsMatch(t, []models.Fulfillment{
		models.FulfillmentPickup, models.FulfillmentDelivery,
	}, first.Fulfillments)
	assert.False(t, first.VIP)
}

func TestAggregateIncludesImportedWithoutOrders(t *testing.T) {
	imported := []models.ImportedCustomer{
		{Name: "Grace", Phone: "555 3333", Email: "grace@example.com"},
	}
	summaries := AggregateCustomers(nil, imported, nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Grace", summaries[0].Name)
	assert.Zero(t, summaries[0].TotalOrders)
	assert.Equal(t, models.SegmentNew, summaries[0].Segment)
}

func TestUpdateContactInfoBackPropagates(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	svc := NewCustomerService(db)
	orderSvc := NewOrderService(db, zap.NewNop())
	restaurant := testRestaurant()
	item := cheeseBurgerItem(t, 1)

	customer := models.CustomerInfo{Name: "Ada Lovelace", Phone: "555 123 4567"}
	first, err := orderSvc.PlaceOrder(ctx, restaurant, []models.CartItem{item}, customer, models.FulfillmentPickup)
	require.NoError(t, err)
	second, err := orderSvc.PlaceOrder(ctx, restaurant, []models.CartItem{item}, customer, models.FulfillmentPickup)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateContactInfo(ctx, restaurant.ID, "5551234567",
		"Ada L.", "ada@example.com", "2 Side St"))

	for _, id := range []string{first.ID, second.ID} {
		order, err := db.GetOrder(ctx, restaurant.ID, id)
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", order.Customer.Name)
		assert.Equal(t, "ada@example.com", order.Customer.Email)
		assert.Equal(t, "2 Side St", order.Customer.Address)
		// Price snapshot stays untouched by the contact correction.
		assert.True(t, order.Total.Equal(first.Total))
	}
}

func TestSetVIPRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	svc := NewCustomerService(db)

	require.NoError(t, svc.SetVIP(ctx, "r1", "555 9999", true))
	phones, err := db.VIPPhones(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"5559999"}, phones)

	require.NoError(t, svc.SetVIP(ctx, "r1", "(555) 9999", false))
	phones, err = db.VIPPhones(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, phones)
}
