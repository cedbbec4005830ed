package services

import (
	"context"
	"sort"
	"strings"

	"platyo/database"
	"platyo/models"

	"github.com/shopspring/decimal"
)

// NormalizePhone reduces a phone number to digits plus a leading '+', so that
// checkout entries and CSV imports collide predictably on the same customer.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Segment classifies a customer by order count. VIP is an orthogonal tag and
// plays no part here.
func Segment(orderCount int) string {
	switch {
	case orderCount >= 5:
		return models.SegmentFrequent
	case orderCount >= 2:
		return models.SegmentRegular
	default:
		return models.SegmentNew
	}
}

// AggregateCustomers folds a restaurant's order history into per-phone
// summaries, unioned with imported contacts that have no orders yet. Spend
// counts delivered orders only. Contact fields come from the most recent
// order for the phone. Results are sorted by last order, newest first,
// order-less imports trailing.
func AggregateCustomers(orders []models.Order, imported []models.ImportedCustomer, vipPhones []string) []models.CustomerSummary {
	vip := make(map[string]bool, len(vipPhones))
	for _, p := range vipPhones {
		vip[NormalizePhone(p)] = true
	}

	byPhone := make(map[string]*models.CustomerSummary)
	var keys []string

	for _, o := range orders {
		phone := NormalizePhone(o.Customer.Phone)
		if phone == "" {
			continue
		}
		summary, ok := byPhone[phone]
		if !ok {
			summary = &models.CustomerSummary{Phone: phone, TotalSpent: decimal.Zero}
			byPhone[phone] = summary
			keys = append(keys, phone)
		}
		summary.TotalOrders++
		if o.Status == models.StatusDelivered {
			summary.TotalSpent = summary.TotalSpent.Add(o.Total)
		}
		if !o.CreatedAt.Before(summary.LastOrderAt) {
			summary.LastOrderAt = o.CreatedAt
			summary.Name = o.Customer.Name
			summary.Email = o.Customer.Email
			summary.Address = o.Customer.Address
			summary.Instructions = o.Customer.Instructions
		}
		hasMode := false
		for _, m := range summary.Fulfillments {
			if m == o.Fulfillment {
				hasMode = true
				break
			}
		}
		if !hasMode {
			summary.Fulfillments = append(summary.Fulfillments, o.Fulfillment)
		}
	}

	for _, c := range imported {
		phone := NormalizePhone(c.Phone)
		if phone == "" {
			continue
		}
		if _, ok := byPhone[phone]; ok {
			// Orders exist for this phone; they are the source of truth for
			// counts, and their snapshot already carries the contact fields.
			continue
		}
		byPhone[phone] = &models.CustomerSummary{
			Phone:        phone,
			Name:         c.Name,
			Email:        c.Email,
			Address:      c.Address,
			Instructions: c.Instructions,
			TotalSpent:   decimal.Zero,
		}
		keys = append(keys, phone)
	}

	summaries := make([]models.CustomerSummary, 0, len(keys))
	for _, phone := range keys {
		summary := byPhone[phone]
		summary.VIP = vip[phone]
		summary.Segment = Segment(summary.TotalOrders)
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastOrderAt.After(summaries[j].LastOrderAt)
	})
	return summaries
}

// CustomerService exposes the derived customer view and the few writes that
// exist around it: the VIP side list and contact-info correction.
type CustomerService struct {
	db *database.Database
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(db *database.Database) *CustomerService {
	return &CustomerService{db: db}
}

// List computes the customer view for a restaurant.
func (s *CustomerService) List(ctx context.Context, restaurantID string) ([]models.CustomerSummary, error) {
	orders, err := s.db.Orders(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	imported, err := s.db.ImportedCustomers(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	vipPhones, err := s.db.VIPPhones(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return AggregateCustomers(orders, imported, vipPhones), nil
}

// SetVIP adds or removes a phone on the restaurant's VIP side list.
func (s *CustomerService) SetVIP(ctx context.Context, restaurantID, phone string, vip bool) error {
	phone = NormalizePhone(phone)
	return s.db.Update(func() error {
		phones, err := s.db.VIPPhones(ctx, restaurantID)
		if err != nil {
			return err
		}
		kept := phones[:0]
		for _, p := range phones {
			if NormalizePhone(p) != phone {
				kept = append(kept, p)
			}
		}
		if vip {
			kept = append(kept, phone)
		}
		return s.db.SaveVIPPhones(ctx, restaurantID, kept)
	})
}

// UpdateContactInfo patches the embedded customer snapshot of every
// historical order sharing the phone key, and any imported contact for it.
// This is the contact-info correction carve-out from order immutability:
// names and addresses may be fixed after the fact, prices and items never.
// Generic order editing must not reach this.
func (s *CustomerService) UpdateContactInfo(ctx context.Context, restaurantID, phone, name, email, address string) error {
	key := NormalizePhone(phone)
	if key == "" {
		return &ValidationError{Field: "phone", Message: "phone is required"}
	}
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}

	return s.db.Update(func() error {
		orders, err := s.db.Orders(ctx, restaurantID)
		if err != nil {
			return err
		}
		touched := false
		for i := range orders {
			if NormalizePhone(orders[i].Customer.Phone) != key {
				continue
			}
			orders[i].Customer.Name = name
			orders[i].Customer.Email = email
			orders[i].Customer.Address = address
			touched = true
		}
		if touched {
			if err := s.db.SaveOrders(ctx, restaurantID, orders); err != nil {
				return err
			}
		}

		imported, err := s.db.ImportedCustomers(ctx, restaurantID)
		if err != nil {
			return err
		}
		patched := false
		for i := range imported {
			if NormalizePhone(imported[i].Phone) == key {
				imported[i].Name = name
				imported[i].Email = email
				imported[i].Address = address
				patched = true
			}
		}
		if patched {
			return s.db.SaveImportedCustomers(ctx, restaurantID, imported)
		}
		return nil
	})
}
