package models

import "time"

// Subscription plans and states.
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"

	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

// Subscription ties a restaurant to a billing plan.
type Subscription struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Plan         string    `json:"plan"`
	Status       string    `json:"status"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
