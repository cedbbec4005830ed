package services

import (
	"sort"
	"sync"
	"time"

	"platyo/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is one browsing session's selection for one restaurant. It lives in
// memory for the duration of the session and is never persisted; checkout
// snapshots its items into an order. The session registry hands the same cart
// to every request carrying the session token, so the mutex guards Items
// against overlapping requests.
type Cart struct {
	ID           string
	RestaurantID string
	Items        []models.CartItem
	CreatedAt    time.Time
	UpdatedAt    time.Time

	mu sync.Mutex
}

// NewCart returns an empty cart bound to a restaurant.
func NewCart(restaurantID string) *Cart {
	now := time.Now()
	return &Cart{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Items:        []models.CartItem{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AddItem puts a product/variation selection in the cart. A nil ingredient
// selection defaults to the product's non-optional ingredients. When a row
// with the same (product, variation, ingredient set) already exists its
// quantity is incremented and its notes and ingredient set are preserved;
// otherwise a new row is appended.
func (c *Cart) AddItem(product models.Product, variation models.ProductVariation, quantity int, selectedIngredientIDs []string, notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if selectedIngredientIDs == nil {
		selectedIngredientIDs = product.IncludedIngredientIDs()
	}
	ids := append([]string(nil), selectedIngredientIDs...)
	sort.Strings(ids)

	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID &&
			c.Items[i].Variation.ID == variation.ID &&
			equalIDs(c.Items[i].SelectedIngredientIDs, ids) {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = time.Now()
			return
		}
	}

	c.Items = append(c.Items, models.CartItem{
		Product:               product,
		Variation:             variation,
		Quantity:              quantity,
		SelectedIngredientIDs: ids,
		Notes:                 notes,
	})
	c.UpdatedAt = time.Now()
}

// RemoveItem deletes every row matching product+variation, regardless of
// ingredient selection. Removing an absent item is a no-op.
func (c *Cart) RemoveItem(productID, variationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeItemLocked(productID, variationID)
}

func (c *Cart) removeItemLocked(productID, variationID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Product.ID == productID && item.Variation.ID == variationID {
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the quantity on the first row matching
// product+variation. A quantity of zero or less removes the item instead.
func (c *Cart) UpdateQuantity(productID, variationID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeItemLocked(productID, variationID)
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID && c.Items[i].Variation.ID == variationID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Items = []models.CartItem{}
	c.UpdatedAt = time.Now()
}

// Snapshot returns a copy of the cart rows for reading outside the lock.
func (c *Cart) Snapshot() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.Items...)
}

// ItemTotal computes one row's line total.
func ItemTotal(item models.CartItem) decimal.Decimal {
	unit := UnitPrice(item.Product, item.Variation, item.SelectedIngredientIDs)
	return LineTotal(unit, item.Quantity)
}

// Total sums the line totals of every row.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(ItemTotal(item))
	}
	return total
}

// ItemCount sums quantities across rows, for the cart badge.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CartSessions owns the live carts, keyed by session token. Carts are created
// on first use and dropped after checkout or expiry.
type CartSessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewCartSessions returns an empty session registry.
func NewCartSessions() *CartSessions {
	return &CartSessions{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session token, creating one when absent. A
// session that switches restaurants starts over with a fresh cart.
func (s *CartSessions) Get(token, restaurantID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[token]
	if !ok || cart.RestaurantID != restaurantID {
		cart = NewCart(restaurantID)
		s.carts[token] = cart
	}
	return cart
}

// Drop discards a session's cart.
func (s *CartSessions) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
}
