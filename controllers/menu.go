package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"platyo/database"
	"platyo/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// MenuController serves the public storefront menu
type MenuController struct {
	DB     *database.Database
	Logger *zap.Logger
}

// NewMenuController creates a new MenuController
func NewMenuController(db *database.Database, logger *zap.Logger) *MenuController {
	return &MenuController{DB: db, Logger: logger}
}

// storefrontRestaurant resolves an active restaurant by its slug.
func storefrontRestaurant(w http.ResponseWriter, r *http.Request, db *database.Database) *models.Restaurant {
	slug := mux.Vars(r)["slug"]
	restaurant, err := db.GetRestaurantBySlug(r.Context(), slug)
	if err != nil || !restaurant.Active {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return nil
	}
	return restaurant
}

// GetMenu returns the restaurant with its active categories and available products
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := storefrontRestaurant(w, r, mc.DB)
	if restaurant == nil {
		return
	}

	categories, err := mc.DB.Categories(ctx, restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	products, err := mc.DB.Products(ctx, restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	activeCategories := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Active {
			activeCategories = append(activeCategories, c)
		}
	}
	sort.SliceStable(activeCategories, func(i, j int) bool {
		return activeCategories[i].SortOrder < activeCategories[j].SortOrder
	})

	availableProducts := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Available {
			availableProducts = append(availableProducts, p)
		}
	}
	sort.SliceStable(availableProducts, func(i, j int) bool {
		return availableProducts[i].SortOrder < availableProducts[j].SortOrder
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"restaurant": restaurant,
		"categories": activeCategories,
		"products":   availableProducts,
	})
}
