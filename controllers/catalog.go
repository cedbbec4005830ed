package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"platyo/database"
	"platyo/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CatalogController handles category and product administration
type CatalogController struct {
	DB     *database.Database
	Logger *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(db *database.Database, logger *zap.Logger) *CatalogController {
	return &CatalogController{DB: db, Logger: logger}
}

// ListCategories returns a restaurant's categories
func (cc *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}
	categories, err := cc.DB.Categories(r.Context(), restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a category
func (cc *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input models.Category
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		http.Error(w, "Category name is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	input.ID = uuid.New().String()
	input.RestaurantID = restaurant.ID
	input.CreatedAt = now
	input.UpdatedAt = now

	err := cc.DB.Update(func() error {
		categories, err := cc.DB.Categories(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		return cc.DB.SaveCategories(ctx, restaurant.ID, append(categories, input))
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, input)
}

// UpdateCategory replaces a category by id
func (cc *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, cc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	var input models.Category
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	found := false
	err := cc.DB.Update(func() error {
		categories, err := cc.DB.Categories(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		for i := range categories {
			if categories[i].ID == vars["categoryId"] {
				input.ID = categories[i].ID
				input.RestaurantID = restaurant.ID
				input.CreatedAt = categories[i].CreatedAt
				input.UpdatedAt = time.Now()
				categories[i] = input
				found = true
				return cc.DB.SaveCategories(ctx, restaurant.ID, categories)
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

// DeleteCategory removes a category; its products keep their category id and
// simply stop matching an active category.
func (cc *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, cc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	err := cc.DB.Update(func() error {
		categories, err := cc.DB.Categories(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		kept := categories[:0]
		for _, c := range categories {
			if c.ID != vars["categoryId"] {
				kept = append(kept, c)
			}
		}
		return cc.DB.SaveCategories(ctx, restaurant.ID, kept)
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// ListProducts returns a restaurant's products
func (cc *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}
	products, err := cc.DB.Products(r.Context(), restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// validateProduct checks a product write for the invariants the storefront
// relies on: at least one variation, no negative prices or extra costs.
func validateProduct(p models.Product) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Product name is required"
	}
	if len(p.Variations) == 0 {
		return "Product needs at least one variation"
	}
	for _, v := range p.Variations {
		if v.Price.IsNegative() {
			return "Variation price must not be negative"
		}
	}
	for _, ing := range p.Ingredients {
		if ing.ExtraCost.IsNegative() {
			return "Ingredient extra cost must not be negative"
		}
	}
	return ""
}

// CreateProduct adds a product with its variations and ingredients
func (cc *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input models.Product
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if msg := validateProduct(input); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	now := time.Now()
	input.ID = uuid.New().String()
	input.RestaurantID = restaurant.ID
	for i := range input.Variations {
		if input.Variations[i].ID == "" {
			input.Variations[i].ID = uuid.New().String()
		}
	}
	for i := range input.Ingredients {
		if input.Ingredients[i].ID == "" {
			input.Ingredients[i].ID = uuid.New().String()
		}
	}
	input.CreatedAt = now
	input.UpdatedAt = now

	err := cc.DB.Update(func() error {
		products, err := cc.DB.Products(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		return cc.DB.SaveProducts(ctx, restaurant.ID, append(products, input))
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, input)
}

// UpdateProduct replaces a product by id. Existing orders are unaffected:
// their items froze names and prices at order time.
func (cc *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, cc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	var input models.Product
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if msg := validateProduct(input); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	found := false
	err := cc.DB.Update(func() error {
		products, err := cc.DB.Products(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		for i := range products {
			if products[i].ID == vars["productId"] {
				input.ID = products[i].ID
				input.RestaurantID = restaurant.ID
				input.CreatedAt = products[i].CreatedAt
				input.UpdatedAt = time.Now()
				for j := range input.Variations {
					if input.Variations[j].ID == "" {
						input.Variations[j].ID = uuid.New().String()
					}
				}
				for j := range input.Ingredients {
					if input.Ingredients[j].ID == "" {
						input.Ingredients[j].ID = uuid.New().String()
					}
				}
				products[i] = input
				found = true
				return cc.DB.SaveProducts(ctx, restaurant.ID, products)
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

// DeleteProduct removes a product from the catalog
func (cc *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	vars := mux.Vars(r)
	restaurant := requireRestaurant(w, r, cc.DB, vars["id"])
	if restaurant == nil {
		return
	}

	err := cc.DB.Update(func() error {
		products, err := cc.DB.Products(ctx, restaurant.ID)
		if err != nil {
			return err
		}
		kept := products[:0]
		for _, p := range products {
			if p.ID != vars["productId"] {
				kept = append(kept, p)
			}
		}
		return cc.DB.SaveProducts(ctx, restaurant.ID, kept)
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
