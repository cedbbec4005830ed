package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"platyo/database"
	"platyo/middleware"
	"platyo/models"
	"platyo/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TicketController handles support tickets between owners and the platform
type TicketController struct {
	DB           *database.Database
	EmailService *utils.EmailService
	Logger       *zap.Logger
}

// NewTicketController creates a new TicketController
func NewTicketController(db *database.Database, emailService *utils.EmailService, logger *zap.Logger) *TicketController {
	return &TicketController{DB: db, EmailService: emailService, Logger: logger}
}

// CreateTicket opens a support ticket for a restaurant
func (tc *TicketController) CreateTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	restaurant := requireRestaurant(w, r, tc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	var input struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Body) == "" {
		http.Error(w, "Subject and body are required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	ticket := models.SupportTicket{
		ID:           uuid.New().String(),
		RestaurantID: restaurant.ID,
		Subject:      input.Subject,
		Body:         input.Body,
		Status:       models.TicketOpen,
		Replies:      []models.TicketReply{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := tc.DB.Update(func() error {
		tickets, err := tc.DB.Tickets(ctx)
		if err != nil {
			return err
		}
		return tc.DB.SaveTickets(ctx, append(tickets, ticket))
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

// ListTicketsForRestaurant returns a restaurant's tickets
func (tc *TicketController) ListTicketsForRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant := requireRestaurant(w, r, tc.DB, mux.Vars(r)["id"])
	if restaurant == nil {
		return
	}

	tickets, err := tc.DB.Tickets(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	mine := []models.SupportTicket{}
	for _, t := range tickets {
		if t.RestaurantID == restaurant.ID {
			mine = append(mine, t)
		}
	}
	writeJSON(w, http.StatusOK, mine)
}

// ListAllTickets returns every ticket (superadmin only, enforced by routing)
func (tc *TicketController) ListAllTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := tc.DB.Tickets(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// ReplyTicket appends a reply to a ticket. Superadmin replies flip the status
// to answered and notify the restaurant owner by email; owner replies reopen.
func (tc *TicketController) ReplyTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Body) == "" {
		http.Error(w, "Reply body is required", http.StatusBadRequest)
		return
	}

	ticket, err := tc.DB.GetTicket(ctx, mux.Vars(r)["ticketId"])
	if err != nil {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	restaurant, err := tc.DB.GetRestaurantByID(ctx, ticket.RestaurantID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !canManage(claims, restaurant) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	ticket.Replies = append(ticket.Replies, models.TicketReply{
		Author:    claims.UserID,
		Body:      input.Body,
		CreatedAt: time.Now(),
	})
	if claims.Role == models.RoleSuperadmin {
		ticket.Status = models.TicketAnswered
	} else {
		ticket.Status = models.TicketOpen
	}
	ticket.UpdatedAt = time.Now()

	if err := tc.saveTicket(ctx, *ticket); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if claims.Role == models.RoleSuperadmin {
		if owner, err := tc.DB.GetUserByID(ctx, restaurant.OwnerID); err == nil {
			if err := tc.EmailService.SendTicketReplyEmail(owner.Email, ticket.Subject); err != nil {
				tc.Logger.Warn("ticket reply email failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
			}
		}
	}
	writeJSON(w, http.StatusOK, ticket)
}

// CloseTicket marks a ticket closed
func (tc *TicketController) CloseTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ticket, err := tc.DB.GetTicket(ctx, mux.Vars(r)["ticketId"])
	if err != nil {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}
	ticket.Status = models.TicketClosed
	ticket.UpdatedAt = time.Now()

	if err := tc.saveTicket(ctx, *ticket); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (tc *TicketController) saveTicket(ctx context.Context, ticket models.SupportTicket) error {
	return tc.DB.Update(func() error {
		tickets, err := tc.DB.Tickets(ctx)
		if err != nil {
			return err
		}
		for i := range tickets {
			if tickets[i].ID == ticket.ID {
				tickets[i] = ticket
				return tc.DB.SaveTickets(ctx, tickets)
			}
		}
		return database.ErrNotFound
	})
}
