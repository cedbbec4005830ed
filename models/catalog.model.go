package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on a restaurant's menu.
type Category struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	SortOrder    int       `json:"sort_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductVariation is a sellable size/version of a product. Every price
// computation starts from a variation's price.
type ProductVariation struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductIngredient is a component of a product. Non-optional ingredients are
// always included and never add cost; optional ones add ExtraCost per unit
// when selected.
type ProductIngredient struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Optional  bool            `json:"optional"`
	ExtraCost decimal.Decimal `json:"extra_cost"`
}

// Product is a menu entry with its variations and ingredients.
type Product struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurant_id"`
	CategoryID   string              `json:"category_id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Images       []string            `json:"images"`
	Variations   []ProductVariation  `json:"variations"`
	Ingredients  []ProductIngredient `json:"ingredients"`
	Available    bool                `json:"available"`
	SortOrder    int                 `json:"sort_order"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// Variation returns the variation with the given id.
func (p Product) Variation(id string) (ProductVariation, bool) {
	for _, v := range p.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariation{}, false
}

// IncludedIngredientIDs returns the ids of the non-optional ingredients,
// i.e. what a cart addition selects by default.
func (p Product) IncludedIngredientIDs() []string {
	var ids []string
	for _, ing := range p.Ingredients {
		if !ing.Optional {
			ids = append(ids, ing.ID)
		}
	}
	return ids
}
