package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"platyo/database"
	"platyo/models"
	"platyo/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// OrderController handles checkout and order management
type OrderController struct {
	DB       *database.Database
	Orders   *services.OrderService
	Sessions *services.CartSessions
	Logger   *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(db *database.Database, orders *services.OrderService, sessions *services.CartSessions, logger *zap.Logger) *OrderController {
	return &OrderController{DB: db, Orders: orders, Sessions: sessions, Logger: logger}
}

// Checkout converts the session's cart into a pending order
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := storefrontRestaurant(w, r, oc.DB)
	if restaurant == nil {
		return
	}

	var input struct {
		Customer    models.CustomerInfo `json:"customer"`
		Fulfillment models.Fulfillment  `json:"fulfillment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	switch input.Fulfillment {
	case models.FulfillmentPickup:
		if !restaurant.PickupEnabled {
			http.Error(w, "Pickup is not offered", http.StatusBadRequest)
			return
		}
	case models.FulfillmentDineIn:
		if !restaurant.DineInEnabled {
			http.Error(w, "Dine-in is not offered", http.StatusBadRequest)
			return
		}
	case models.FulfillmentDelivery:
		if !restaurant.DeliveryEnabled {
			http.Error(w, "Delivery is not offered", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "Invalid fulfillment mode", http.StatusBadRequest)
		return
	}

	token := r.Header.Get(sessionHeader)
	if token == "" {
		http.Error(w, "Cart session missing", http.StatusBadRequest)
		return
	}
	cart := oc.Sessions.Get(token, restaurant.ID)
	items := cart.Snapshot()
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}
	if restaurant.MinimumOrder.IsPositive() && cart.Total().LessThan(restaurant.MinimumOrder) {
		http.Error(w, "Order is below the restaurant minimum", http.StatusBadRequest)
		return
	}

	order, err := oc.Orders.PlaceOrder(ctx, *restaurant, items, input.Customer, input.Fulfillment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	oc.Sessions.Drop(token)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":         order,
		"whatsapp_link": services.CustomerOrderLink(*restaurant, *order),
	})
}

// TrackOrder lets a customer look up their order status by number
func (oc *OrderController) TrackOrder(w http.ResponseWriter, r *http.Request) {
	restaurant := storefrontRestaurant(w, r, oc.DB)
	if restaurant == nil {
		return
	}
	number := mux.Vars(r)["number"]

	order, err := oc.DB.GetOrderByNumber(r.Context(), restaurant.ID, number)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total":        order.Total,
		"created_at":   order.CreatedAt,
	})
}

// ListOrders returns a restaurant's orders, newest first, optionally filtered by status
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, oc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	orders, err := oc.DB.Orders(ctx, restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == models.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder returns one order
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, oc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	order, err := oc.DB.GetOrder(r.Context(), restaurant.ID, vars["orderId"])
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CreateManualOrder lets an admin compose an order directly (phone orders,
// walk-ins). Item selections reference the live catalog and go through the
// same snapshot path as checkout.
func (oc *OrderController) CreateManualOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, oc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input struct {
		Customer    models.CustomerInfo `json:"customer"`
		Fulfillment models.Fulfillment  `json:"fulfillment"`
		Items       []struct {
			ProductID             string   `json:"product_id"`
			VariationID           string   `json:"variation_id"`
			Quantity              int      `json:"quantity"`
			SelectedIngredientIDs []string `json:"selected_ingredient_ids"`
			Notes                 string   `json:"notes"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	cart := services.NewCart(restaurant.ID)
	for _, sel := range input.Items {
		product, err := oc.DB.GetProduct(ctx, restaurant.ID, sel.ProductID)
		if err != nil {
			http.Error(w, "Product not found: "+sel.ProductID, http.StatusBadRequest)
			return
		}
		variation, ok := product.Variation(sel.VariationID)
		if !ok {
			http.Error(w, "Variation not found: "+sel.VariationID, http.StatusBadRequest)
			return
		}
		quantity := sel.Quantity
		if quantity < 1 {
			quantity = 1
		}
		cart.AddItem(*product, variation, quantity, sel.SelectedIngredientIDs, sel.Notes)
	}

	order, err := oc.Orders.PlaceOrder(ctx, *restaurant, cart.Snapshot(), input.Customer, input.Fulfillment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// AdvanceOrder moves an order one step along the status chain
func (oc *OrderController) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, oc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	order, ok, err := oc.Orders.Advance(r.Context(), restaurant.ID, vars["orderId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		// Terminal: nothing to advance to. Not an error.
		writeJSON(w, http.StatusOK, map[string]interface{}{"order": order, "advanced": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order, "advanced": true})
}

// SetOrderStatus is the unrestricted manual status override
func (oc *OrderController) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, oc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	switch input.Status {
	case models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusDelivered, models.StatusCancelled:
	default:
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	order, err := oc.Orders.Override(r.Context(), restaurant.ID, vars["orderId"], input.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GetNotification returns the messaging payload and deep link for an order.
// The first call returns the full order message; later calls return the short
// status-update variant.
func (oc *OrderController) GetNotification(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, oc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	order, err := oc.DB.GetOrder(r.Context(), restaurant.ID, vars["orderId"])
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	message := services.NotificationMessage(*restaurant, *order)
	link := services.WhatsAppLink(order.Customer.Phone, message)

	if _, err := oc.Orders.MarkNotified(r.Context(), restaurant.ID, order.ID); err != nil {
		oc.Logger.Warn("marking order notified failed", zap.String("order_id", order.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": message,
		"link":    link,
		"phone":   order.Customer.Phone,
	})
}

// GetReceipt returns the printable ticket for an order as plain text
func (oc *OrderController) GetReceipt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, oc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	order, err := oc.DB.GetOrder(r.Context(), restaurant.ID, vars["orderId"])
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(services.Receipt(*restaurant, *order)))
}
