package services

import (
	"context"
	"testing"

	"platyo/database"
	"platyo/models"
	"platyo/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *database.Database {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return database.New(store)
}

func testRestaurant() models.Restaurant {
	return models.Restaurant{
		ID:              "r1",
		Name:            "Testaurant",
		Slug:            "testaurant",
		Phone:           "+1 555 000 1111",
		Currency:        "$",
		PickupEnabled:   true,
		DeliveryEnabled: true,
		DeliveryCost:    decimal.RequireFromString("3.00"),
		PrepMinutes:     20,
		Active:          true,
	}
}

func cheeseBurgerItem(t *testing.T, quantity int) models.CartItem {
	t.Helper()
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")
	cart.AddItem(p, v, quantity, []string{"i-cheese"}, "")
	require.Len(t, cart.Items, 1)
	return cart.Items[0]
}

func pickupCustomer() models.CustomerInfo {
	return models.CustomerInfo{Name: "Ada", Phone: "+1 555 123 4567"}
}

func TestNextStatusChain(t *testing.T) {
	steps := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusPreparing},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusReady, models.StatusDelivered},
	}
	for _, step := range steps {
		next, ok := NextStatus(step.from)
		assert.True(t, ok, "from %s", step.from)
		assert.Equal(t, step.to, next)
	}

	for _, terminal := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled, "bogus"} {
		_, ok := NextStatus(terminal)
		assert.False(t, ok, "from %s", terminal)
	}
}

func TestNextStatusReachesDeliveredInFourSteps(t *testing.T) {
	status := models.StatusPending
	steps := 0
	for {
		next, ok := NextStatus(status)
		if !ok {
			break
		}
		status = next
		steps++
		require.LessOrEqual(t, steps, 4, "chain must not cycle")
	}
	assert.Equal(t, models.StatusDelivered, status)
	assert.Equal(t, 4, steps)
}

func TestBuildOrderPickup(t *testing.T) {
	item := cheeseBurgerItem(t, 2)

	order, err := BuildOrder("r1", []models.CartItem{item}, pickupCustomer(),
		models.FulfillmentPickup, decimal.RequireFromString("3.00"), nil)
	require.NoError(t, err)

	// (10.00 + 1.50) * 2 = 23.00; pickup carries no delivery cost even when
	// one is passed in.
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("23.00")), "got %s", order.Subtotal)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("23.00")), "got %s", order.Total)
	assert.True(t, order.DeliveryCost.IsZero())
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "ORD-1001", order.OrderNumber)
}

func TestBuildOrderDeliveryAddsCost(t *testing.T) {
	item := cheeseBurgerItem(t, 2)
	customer := pickupCustomer()
	customer.Address = "1 Main St"
	customer.City = "Springfield"

	order, err := BuildOrder("r1", []models.CartItem{item}, customer,
		models.FulfillmentDelivery, decimal.RequireFromString("3.00"), nil)
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("26.00")), "got %s", order.Total)
}

func TestBuildOrderValidation(t *testing.T) {
	item := cheeseBurgerItem(t, 1)

	cases := []struct {
		name        string
		customer    models.CustomerInfo
		fulfillment models.Fulfillment
		field       string
	}{
		{"missing name", models.CustomerInfo{Phone: "555"}, models.FulfillmentPickup, "name"},
		{"missing phone", models.CustomerInfo{Name: "Ada"}, models.FulfillmentPickup, "phone"},
		{"delivery missing address", models.CustomerInfo{Name: "Ada", Phone: "555"}, models.FulfillmentDelivery, "address"},
		{"delivery missing city", models.CustomerInfo{Name: "Ada", Phone: "555", Address: "1 Main St"}, models.FulfillmentDelivery, "city"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildOrder("r1", []models.CartItem{item}, tc.customer, tc.fulfillment, decimal.Zero, nil)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestBuildOrderEmptyCart(t *testing.T) {
	_, err := BuildOrder("r1", nil, pickupCustomer(), models.FulfillmentPickup, decimal.Zero, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGenerateOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-1001", GenerateOrderNumber(nil))

	existing := []models.Order{
		{OrderNumber: "ORD-1001"},
		{OrderNumber: "ORD-1042"},
		{OrderNumber: "ORD-1010"},
		{OrderNumber: "garbage"},
	}
	assert.Equal(t, "ORD-1043", GenerateOrderNumber(existing))
}

func TestOrderNumbersScopedPerRestaurant(t *testing.T) {
	db := testDB(t)
	svc := NewOrderService(db, zap.NewNop())
	ctx := context.Background()

	r1 := testRestaurant()
	r2 := testRestaurant()
	r2.ID = "r2"
	item := cheeseBurgerItem(t, 1)

	o1, err := svc.PlaceOrder(ctx, r1, []models.CartItem{item}, pickupCustomer(), models.FulfillmentPickup)
	require.NoError(t, err)
	o2, err := svc.PlaceOrder(ctx, r1, []models.CartItem{item}, pickupCustomer(), models.FulfillmentPickup)
	require.NoError(t, err)
	other, err := svc.PlaceOrder(ctx, r2, []models.CartItem{item}, pickupCustomer(), models.FulfillmentPickup)
	require.NoError(t, err)

	assert.Equal(t, "ORD-1001", o1.OrderNumber)
	assert.Equal(t, "ORD-1002", o2.OrderNumber)
	assert.Equal(t, "ORD-1001", other.OrderNumber, "numbering restarts per restaurant")
}

func TestOrderTotalsSurviveCatalogEdits(t *testing.T) {
	db := testDB(t)
	svc := NewOrderService(db, zap.NewNop())
	ctx := context.Background()
	restaurant := testRestaurant()

	p := testBurger()
	require.NoError(t, db.SaveProducts(ctx, restaurant.ID, []models.Product{p}))

	item := cheeseBurgerItem(t, 2)
	placed, err := svc.PlaceOrder(ctx, restaurant, []models.CartItem{item}, pickupCustomer(), models.FulfillmentPickup)
	require.NoError(t, err)

	// Double the variation price after the fact.
	p.Variations[0].Price = decimal.RequireFromString("20.00")
	require.NoError(t, db.SaveProducts(ctx, restaurant.ID, []models.Product{p}))

	reread, err := db.GetOrder(ctx, restaurant.ID, placed.ID)
	require.NoError(t, err)
	assert.True(t, reread.Total.Equal(decimal.RequireFromString("23.00")),
		"historical order total changed to %s after catalog edit", reread.Total)
}

func TestAdvanceAndOverride(t *testing.T) {
	db := testDB(t)
	svc := NewOrderService(db, zap.NewNop())
	ctx := context.Background()
	restaurant := testRestaurant()
	item := cheeseBurgerItem(t, 1)

	placed, err := svc.PlaceOrder(ctx, restaurant, []models.CartItem{item}, pickupCustomer(), models.FulfillmentPickup)
	require.NoError(t, err)

	advanced, ok, err := svc.Advance(ctx, restaurant.ID, placed.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.StatusConfirmed, advanced.Status)

	// Manual override may jump and cancel without legality checks.
	overridden, err := svc.Override(ctx, restaurant.ID, placed.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, overridden.Status)

	_, ok, err = svc.Advance(ctx, restaurant.ID, placed.ID)
	require.NoError(t, err)
	assert.False(t, ok, "terminal order has no next status")
}
