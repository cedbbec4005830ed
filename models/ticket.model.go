package models

import "time"

// Support ticket states.
const (
	TicketOpen     = "open"
	TicketAnswered = "answered"
	TicketClosed   = "closed"
)

// TicketReply is one message in a ticket thread.
type TicketReply struct {
	Author    string    `json:"author"` // user id
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// SupportTicket is a help request from a restaurant owner.
type SupportTicket struct {
	ID           string        `json:"id"`
	RestaurantID string        `json:"restaurant_id"`
	Subject      string        `json:"subject"`
	Body         string        `json:"body"`
	Status       string        `json:"status"`
	Replies      []TicketReply `json:"replies"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
