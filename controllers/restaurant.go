package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"platyo/database"
	"platyo/middleware"
	"platyo/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RestaurantController handles restaurant administration
type RestaurantController struct {
	DB     *database.Database
	Logger *zap.Logger
}

// NewRestaurantController creates a new RestaurantController
func NewRestaurantController(db *database.Database, logger *zap.Logger) *RestaurantController {
	return &RestaurantController{DB: db, Logger: logger}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// validateRestaurantSettings guards the numeric fields the storefront and
// receipt math depend on. The included-tax line divides by 100+rate, so a
// negative rate must never reach storage.
func validateRestaurantSettings(r models.Restaurant) string {
	if r.DeliveryCost.IsNegative() || r.MinimumOrder.IsNegative() {
		return "Costs must not be negative"
	}
	if r.Billing.TaxRate.IsNegative() {
		return "Tax rate must not be negative"
	}
	for _, pct := range r.Billing.TipPercents {
		if pct < 0 {
			return "Tip percents must not be negative"
		}
	}
	return ""
}

// CreateRestaurant registers a restaurant owned by the authenticated user
func (rc *RestaurantController) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		http.Error(w, "Restaurant name is required", http.StatusBadRequest)
		return
	}
	if msg := validateRestaurantSettings(input); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}
	if _, err := rc.DB.GetRestaurantBySlug(ctx, slug); err == nil {
		http.Error(w, "Slug already taken", http.StatusConflict)
		return
	}

	now := time.Now()
	input.ID = uuid.New().String()
	input.OwnerID = claims.UserID
	input.Slug = slug
	if input.Currency == "" {
		input.Currency = "$"
	}
	input.Active = true
	input.CreatedAt = now
	input.UpdatedAt = now

	if err := rc.DB.UpsertRestaurant(ctx, input); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, input)
}

// GetRestaurant returns a restaurant's settings
func (rc *RestaurantController) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, rc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// UpdateRestaurant replaces a restaurant's settings. Ownership, slug and the
// active flag are not editable here; activation is a superadmin action.
func (rc *RestaurantController) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, rc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		http.Error(w, "Restaurant name is required", http.StatusBadRequest)
		return
	}
	if msg := validateRestaurantSettings(input); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	input.ID = restaurant.ID
	input.OwnerID = restaurant.OwnerID
	input.Slug = restaurant.Slug
	input.Active = restaurant.Active
	input.CreatedAt = restaurant.CreatedAt
	input.UpdatedAt = time.Now()

	if err := rc.DB.UpsertRestaurant(ctx, input); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

// ListMyRestaurants returns the restaurants owned by the authenticated user
func (rc *RestaurantController) ListMyRestaurants(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	restaurants, err := rc.DB.Restaurants(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	mine := []models.Restaurant{}
	for _, restaurant := range restaurants {
		if restaurant.OwnerID == claims.UserID {
			mine = append(mine, restaurant)
		}
	}
	writeJSON(w, http.StatusOK, mine)
}

// ListRestaurants returns every restaurant (superadmin only, enforced by routing)
func (rc *RestaurantController) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := rc.DB.Restaurants(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

// SetRestaurantActive toggles a restaurant's storefront on or off
func (rc *RestaurantController) SetRestaurantActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	restaurant, err := rc.DB.GetRestaurantByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	restaurant.Active = input.Active
	restaurant.UpdatedAt = time.Now()

	if err := rc.DB.UpsertRestaurant(ctx, *restaurant); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rc.Logger.Info("restaurant active flag changed",
		zap.String("restaurant_id", restaurant.ID), zap.Bool("active", input.Active))
	writeJSON(w, http.StatusOK, restaurant)
}
