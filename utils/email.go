package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService handles transactional mail through SendGrid.
type EmailService struct {
	client  *sendgrid.Client
	sender  string
	baseURL string
}

// NewEmailService returns a service bound to an API key and sender address.
// An empty API key yields a no-op service, so local setups work without mail.
func NewEmailService(apiKey, sender, baseURL string) *EmailService {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &EmailService{client: client, sender: sender, baseURL: baseURL}
}

// SendEmail sends a plain-text email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, body string) error {
	if es.client == nil {
		return nil
	}
	from := mail.NewEmail("Platyo", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendVerificationEmail sends an account verification link to a new owner.
func (es *EmailService) SendVerificationEmail(toEmail, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", es.baseURL, token)
	body := fmt.Sprintf("Welcome to Platyo!\n\nPlease verify your account by opening this link:\n%s\n", link)
	return es.SendEmail(toEmail, "Verify your account", body)
}

// SendTicketReplyEmail notifies an owner that their support ticket got a reply.
func (es *EmailService) SendTicketReplyEmail(toEmail, subject string) error {
	body := fmt.Sprintf("Your support ticket %q has a new reply.\n\nLog in to read it.\n", subject)
	return es.SendEmail(toEmail, "Support ticket update", body)
}
