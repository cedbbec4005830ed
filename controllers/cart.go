package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"platyo/database"
	"platyo/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-Id"

// CartController handles the storefront session cart
type CartController struct {
	DB       *database.Database
	Sessions *services.CartSessions
	Logger   *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(db *database.Database, sessions *services.CartSessions, logger *zap.Logger) *CartController {
	return &CartController{DB: db, Sessions: sessions, Logger: logger}
}

// session resolves the caller's cart session token, minting one when absent,
// and echoes it in the response so the storefront can keep it.
func (cc *CartController) session(w http.ResponseWriter, r *http.Request) string {
	token := r.Header.Get(sessionHeader)
	if token == "" {
		token = uuid.New().String()
	}
	w.Header().Set(sessionHeader, token)
	return token
}

type cartView struct {
	SessionID string         `json:"session_id"`
	Items     []cartItemView `json:"items"`
	Total     string         `json:"total"`
	ItemCount int            `json:"item_count"`
}

type cartItemView struct {
	ProductID             string   `json:"product_id"`
	ProductName           string   `json:"product_name"`
	VariationID           string   `json:"variation_id"`
	VariationName         string   `json:"variation_name"`
	Quantity              int      `json:"quantity"`
	SelectedIngredientIDs []string `json:"selected_ingredient_ids"`
	Notes                 string   `json:"notes,omitempty"`
	UnitPrice             string   `json:"unit_price"`
	Total                 string   `json:"total"`
}

func viewOf(token string, cart *services.Cart) cartView {
	view := cartView{
		SessionID: token,
		Items:     []cartItemView{},
		Total:     cart.Total().StringFixed(2),
		ItemCount: cart.ItemCount(),
	}
	for _, item := range cart.Snapshot() {
		unit := services.UnitPrice(item.Product, item.Variation, item.SelectedIngredientIDs)
		view.Items = append(view.Items, cartItemView{
			ProductID:             item.Product.ID,
			ProductName:           item.Product.Name,
			VariationID:           item.Variation.ID,
			VariationName:         item.Variation.Name,
			Quantity:              item.Quantity,
			SelectedIngredientIDs: item.SelectedIngredientIDs,
			Notes:                 item.Notes,
			UnitPrice:             unit.StringFixed(2),
			Total:                 services.ItemTotal(item).StringFixed(2),
		})
	}
	return view
}

// GetCart returns the session's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	restaurant := storefrontRestaurant(w, r, cc.DB)
	if restaurant == nil {
		return
	}
	token := cc.session(w, r)
	cart := cc.Sessions.Get(token, restaurant.ID)
	writeJSON(w, http.StatusOK, viewOf(token, cart))
}

// AddToCart adds a product/variation selection to the session's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := storefrontRestaurant(w, r, cc.DB)
	if restaurant == nil {
		return
	}

	var input struct {
		ProductID             string   `json:"product_id"`
		VariationID           string   `json:"variation_id"`
		Quantity              int      `json:"quantity"`
		SelectedIngredientIDs []string `json:"selected_ingredient_ids"`
		Notes                 string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	product, err := cc.DB.GetProduct(ctx, restaurant.ID, input.ProductID)
	if err != nil || !product.Available {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	variation, ok := product.Variation(input.VariationID)
	if !ok {
		http.Error(w, "Variation not found", http.StatusNotFound)
		return
	}

	token := cc.session(w, r)
	cart := cc.Sessions.Get(token, restaurant.ID)
	cart.AddItem(*product, variation, input.Quantity, input.SelectedIngredientIDs, input.Notes)

	cc.Logger.Debug("cart add",
		zap.String("restaurant_id", restaurant.ID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", input.Quantity))
	writeJSON(w, http.StatusOK, viewOf(token, cart))
}

// UpdateCartItem sets the quantity of a cart row; zero removes it
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	restaurant := storefrontRestaurant(w, r, cc.DB)
	if restaurant == nil {
		return
	}

	var input struct {
		ProductID   string `json:"product_id"`
		VariationID string `json:"variation_id"`
		Quantity    int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	token := cc.session(w, r)
	cart := cc.Sessions.Get(token, restaurant.ID)
	cart.UpdateQuantity(input.ProductID, input.VariationID, input.Quantity)
	writeJSON(w, http.StatusOK, viewOf(token, cart))
}

// RemoveFromCart removes every row for a product+variation
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	restaurant := storefrontRestaurant(w, r, cc.DB)
	if restaurant == nil {
		return
	}

	var input struct {
		ProductID   string `json:"product_id"`
		VariationID string `json:"variation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	token := cc.session(w, r)
	cart := cc.Sessions.Get(token, restaurant.ID)
	cart.RemoveItem(input.ProductID, input.VariationID)
	writeJSON(w, http.StatusOK, viewOf(token, cart))
}

// ClearCart empties the session's cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	restaurant := storefrontRestaurant(w, r, cc.DB)
	if restaurant == nil {
		return
	}
	token := cc.session(w, r)
	cart := cc.Sessions.Get(token, restaurant.ID)
	cart.Clear()
	writeJSON(w, http.StatusOK, viewOf(token, cart))
}
