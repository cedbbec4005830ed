package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"platyo/database"
	"platyo/middleware"
	"platyo/models"
	"platyo/services"
	"platyo/utils"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service failures onto HTTP statuses: validation
// failures are the caller's problem, lookups that miss are 404, the rest is
// a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// canManage reports whether the authenticated user may administer the
// restaurant: its owner, or any superadmin.
func canManage(claims *utils.Claims, restaurant *models.Restaurant) bool {
	if claims.Role == models.RoleSuperadmin {
		return true
	}
	return restaurant.OwnerID == claims.UserID
}

// requireRestaurant resolves the {id} route variable and checks the caller
// may manage it. Writes the error response itself when it returns nil.
func requireRestaurant(w http.ResponseWriter, r *http.Request, db *database.Database, restaurantID string) *models.Restaurant {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	restaurant, err := db.GetRestaurantByID(r.Context(), restaurantID)
	if err != nil {
		writeServiceError(w, err)
		return nil
	}
	if !canManage(claims, restaurant) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return restaurant
}
