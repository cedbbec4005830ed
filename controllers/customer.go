package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"platyo/database"
	"platyo/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CustomerController exposes the derived customer view and its side writes
type CustomerController struct {
	DB        *database.Database
	Customers *services.CustomerService
	CSV       *services.CSVService
	Logger    *zap.Logger
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(db *database.Database, customers *services.CustomerService, csv *services.CSVService, logger *zap.Logger) *CustomerController {
	return &CustomerController{DB: db, Customers: customers, CSV: csv, Logger: logger}
}

// ListCustomers returns the per-phone customer summaries for a restaurant
func (cc *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	customers, err := cc.Customers.List(ctx, restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// SetVIP flags or unflags a customer phone as VIP
func (cc *CustomerController) SetVIP(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input struct {
		Phone string `json:"phone"`
		VIP   bool   `json:"vip"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if services.NormalizePhone(input.Phone) == "" {
		http.Error(w, "Phone is required", http.StatusBadRequest)
		return
	}

	if err := cc.Customers.SetVIP(r.Context(), restaurant.ID, input.Phone, input.VIP); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"phone": input.Phone, "vip": input.VIP})
}

// UpdateContactInfo corrects a customer's contact fields across their order
// history. This is the only write path that touches historical orders.
func (cc *CustomerController) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input struct {
		Phone   string `json:"phone"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := cc.Customers.UpdateContactInfo(ctx, restaurant.ID, input.Phone, input.Name, input.Email, input.Address); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact info updated"})
}

// ExportCSV streams the customer view as a CSV download
func (cc *CustomerController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	customers, err := cc.Customers.List(ctx, restaurant.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", restaurant.Slug+"-customers.csv"))
	if err := services.ExportCustomersCSV(w, customers); err != nil {
		cc.Logger.Error("csv export failed", zap.String("restaurant_id", restaurant.ID), zap.Error(err))
	}
}

// PreviewImportCSV validates an uploaded CSV and returns the accepted rows
// and the line-numbered rejections, without writing anything
func (cc *CustomerController) PreviewImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	rows, rowErrs, err := cc.CSV.Preview(ctx, restaurant.ID, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if rows == nil {
		rows = []services.ImportRow{}
	}
	if rowErrs == nil {
		rowErrs = []services.ImportError{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"preview": rows,
		"errors":  rowErrs,
	})
}

// ImportCSV validates an uploaded CSV and stores the accepted rows
func (cc *CustomerController) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, cc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	rows, rowErrs, err := cc.CSV.Preview(ctx, restaurant.ID, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cc.CSV.Apply(ctx, restaurant.ID, rows); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if rowErrs == nil {
		rowErrs = []services.ImportError{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(rows),
		"errors":   rowErrs,
	})
}
