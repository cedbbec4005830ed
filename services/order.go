package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"platyo/database"
	"platyo/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Order numbers are restaurant-scoped, human readable and strictly
// increasing: ORD-1001, ORD-1002, ...
const (
	orderNumberPrefix = "ORD-"
	orderNumberBase   = 1000
)

// ValidationError is a recoverable input failure, reported to the caller
// with the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var statusChain = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:   models.StatusConfirmed,
	models.StatusConfirmed: models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusDelivered,
}

// NextStatus returns the next step in the forward chain. ok is false for
// terminal and unknown statuses; there is no backward transition. This is the
// advisory path behind the guided "advance" action — UpdateStatus remains
// free to jump anywhere.
func NextStatus(current models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := statusChain[current]
	return next, ok
}

// UpdateStatus sets the status unconditionally and touches the modification
// timestamp. No legality check: manual admin overrides, including
// cancellation from any state, are allowed.
func UpdateStatus(order *models.Order, status models.OrderStatus) {
	order.Status = status
	order.UpdatedAt = time.Now()
}

// GenerateOrderNumber picks the next number after the highest one already
// issued for this restaurant, starting at 1001 when no prior orders exist.
// The caller passes one restaurant's orders, which keeps numbering scoped
// per tenant without a central counter.
func GenerateOrderNumber(existing []models.Order) string {
	max := orderNumberBase
	for _, o := range existing {
		suffix, ok := strings.CutPrefix(o.OrderNumber, orderNumberPrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", orderNumberPrefix, max+1)
}

// ValidateCustomer checks the required checkout fields. Delivery additionally
// needs an address and city.
func ValidateCustomer(customer models.CustomerInfo, fulfillment models.Fulfillment) error {
	if strings.TrimSpace(customer.Name) == "" {
		return &ValidationError{Field: "name", Message: "customer name is required"}
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "customer phone is required"}
	}
	if fulfillment == models.FulfillmentDelivery {
		if strings.TrimSpace(customer.Address) == "" {
			return &ValidationError{Field: "address", Message: "delivery address is required"}
		}
		if strings.TrimSpace(customer.City) == "" {
			return &ValidationError{Field: "city", Message: "delivery city is required"}
		}
	}
	return nil
}

// SnapshotItem freezes a cart row into an order item: names, prices and the
// resolved ingredient list are copied by value so later catalog edits cannot
// reach it. The frozen ingredients are the product's non-optional ones plus
// every selected optional one.
func SnapshotItem(item models.CartItem) models.OrderItem {
	var ingredients []models.OrderIngredient
	for _, ing := range item.Product.Ingredients {
		selected := false
		for _, id := range item.SelectedIngredientIDs {
			if id == ing.ID {
				selected = true
				break
			}
		}
		if !ing.Optional || selected {
			ingredients = append(ingredients, models.OrderIngredient{
				ID:        ing.ID,
				Name:      ing.Name,
				Optional:  ing.Optional,
				ExtraCost: ing.ExtraCost,
			})
		}
	}

	unit := UnitPrice(item.Product, item.Variation, item.SelectedIngredientIDs)
	return models.OrderItem{
		ProductID:      item.Product.ID,
		ProductName:    item.Product.Name,
		VariationID:    item.Variation.ID,
		VariationName:  item.Variation.Name,
		VariationPrice: item.Variation.Price,
		Ingredients:    ingredients,
		Quantity:       item.Quantity,
		Notes:          item.Notes,
		UnitPrice:      unit,
		Total:          LineTotal(unit, item.Quantity),
	}
}

// BuildOrder assembles an order from cart items without touching storage.
// The delivery cost applies only to delivery orders. existing is the
// restaurant's order history, consulted for the next order number.
func BuildOrder(restaurantID string, items []models.CartItem, customer models.CustomerInfo, fulfillment models.Fulfillment, deliveryCost decimal.Decimal, existing []models.Order) (*models.Order, error) {
	if err := ValidateCustomer(customer, fulfillment); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "order has no items"}
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		snapshot := SnapshotItem(item)
		orderItems = append(orderItems, snapshot)
		subtotal = subtotal.Add(snapshot.Total)
	}

	if fulfillment != models.FulfillmentDelivery {
		deliveryCost = decimal.Zero
	}

	now := time.Now()
	return &models.Order{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		OrderNumber:  GenerateOrderNumber(existing),
		Customer:     customer,
		Items:        orderItems,
		Fulfillment:  fulfillment,
		Subtotal:     subtotal,
		DeliveryCost: deliveryCost,
		Total:        subtotal.Add(deliveryCost),
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// OrderService persists orders built from carts or manual admin entry.
type OrderService struct {
	db     *database.Database
	logger *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(db *database.Database, logger *zap.Logger) *OrderService {
	return &OrderService{db: db, logger: logger}
}

// PlaceOrder builds and stores an order for a restaurant. Validation
// failures abort before anything is written.
func (s *OrderService) PlaceOrder(ctx context.Context, restaurant models.Restaurant, items []models.CartItem, customer models.CustomerInfo, fulfillment models.Fulfillment) (*models.Order, error) {
	deliveryCost := decimal.Zero
	if fulfillment == models.FulfillmentDelivery {
		deliveryCost = restaurant.DeliveryCost
	}

	var order *models.Order
	err := s.db.Update(func() error {
		existing, err := s.db.Orders(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		order, err = BuildOrder(restaurant.ID, items, customer, fulfillment, deliveryCost, existing)
		if err != nil {
			return err
		}
		return s.db.SaveOrders(ctx, restaurant.ID, append(existing, *order))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()))
	return order, nil
}

// Advance moves an order one step along the status chain. ok is false when
// the order is terminal, in which case nothing is written.
func (s *OrderService) Advance(ctx context.Context, restaurantID, orderID string) (*models.Order, bool, error) {
	order, err := s.db.GetOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, false, err
	}
	next, ok := NextStatus(order.Status)
	if !ok {
		return order, false, nil
	}
	UpdateStatus(order, next)
	if err := s.db.UpsertOrder(ctx, *order); err != nil {
		return nil, false, err
	}
	return order, true, nil
}

// Override sets an arbitrary status on an order, the unrestricted admin path.
func (s *OrderService) Override(ctx context.Context, restaurantID, orderID string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.db.GetOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	UpdateStatus(order, status)
	if err := s.db.UpsertOrder(ctx, *order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkNotified records that the first notification for an order went out, so
// later sends use the short status-update payload.
func (s *OrderService) MarkNotified(ctx context.Context, restaurantID, orderID string) (*models.Order, error) {
	order, err := s.db.GetOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Notified {
		order.Notified = true
		if err := s.db.UpsertOrder(ctx, *order); err != nil {
			return nil, err
		}
	}
	return order, nil
}
