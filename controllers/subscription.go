package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"platyo/database"
	"platyo/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SubscriptionController handles restaurant subscriptions (superadmin surface)
type SubscriptionController struct {
	DB     *database.Database
	Logger *zap.Logger
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(db *database.Database, logger *zap.Logger) *SubscriptionController {
	return &SubscriptionController{DB: db, Logger: logger}
}

func validPlan(plan string) bool {
	return plan == models.PlanFree || plan == models.PlanBasic || plan == models.PlanPremium
}

func validSubscriptionStatus(status string) bool {
	return status == models.SubscriptionActive || status == models.SubscriptionPastDue || status == models.SubscriptionCancelled
}

// ListSubscriptions returns every subscription
func (sc *SubscriptionController) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := sc.DB.Subscriptions(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subscriptions)
}

// CreateSubscription assigns a plan to a restaurant
func (sc *SubscriptionController) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.Subscription
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if !validPlan(input.Plan) {
		http.Error(w, "Invalid plan", http.StatusBadRequest)
		return
	}
	if _, err := sc.DB.GetRestaurantByID(ctx, input.RestaurantID); err != nil {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	input.ID = uuid.New().String()
	input.Status = models.SubscriptionActive
	if input.PeriodStart.IsZero() {
		input.PeriodStart = now
	}
	if input.PeriodEnd.IsZero() {
		input.PeriodEnd = now.AddDate(0, 1, 0)
	}
	input.CreatedAt = now
	input.UpdatedAt = now

	err := sc.DB.Update(func() error {
		subscriptions, err := sc.DB.Subscriptions(ctx)
		if err != nil {
			return err
		}
		return sc.DB.SaveSubscriptions(ctx, append(subscriptions, input))
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, input)
}

// UpdateSubscription changes a subscription's plan, status or period
func (sc *SubscriptionController) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.Subscription
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if !validPlan(input.Plan) || !validSubscriptionStatus(input.Status) {
		http.Error(w, "Invalid plan or status", http.StatusBadRequest)
		return
	}

	found := false
	subscriptionID := mux.Vars(r)["subscriptionId"]
	err := sc.DB.Update(func() error {
		subscriptions, err := sc.DB.Subscriptions(ctx)
		if err != nil {
			return err
		}
		for i := range subscriptions {
			if subscriptions[i].ID == subscriptionID {
				input.ID = subscriptions[i].ID
				input.RestaurantID = subscriptions[i].RestaurantID
				input.CreatedAt = subscriptions[i].CreatedAt
				input.UpdatedAt = time.Now()
				subscriptions[i] = input
				found = true
				return sc.DB.SaveSubscriptions(ctx, subscriptions)
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Subscription not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

// GetMySubscription returns the subscription of a restaurant the caller manages
func (sc *SubscriptionController) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, sc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	subscriptions, err := sc.DB.Subscriptions(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	for _, sub := range subscriptions {
		if sub.RestaurantID == restaurant.ID {
			writeJSON(w, http.StatusOK, sub)
			return
		}
	}
	http.Error(w, "No subscription", http.StatusNotFound)
}
