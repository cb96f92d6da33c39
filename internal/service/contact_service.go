package service

import (
	"context"
	"fmt"

	"portfolio/internal/mail"
)

// ContactSubject is the subject of every contact notification.
const ContactSubject = "New-Message"

// ContactMessage is one visitor submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactService forwards contact form submissions to the site owner.
type ContactService interface {
	Submit(ctx context.Context, msg ContactMessage) error
}

type contactService struct {
	sender mail.Sender
}

// NewContactService creates a new contact service.
func NewContactService(sender mail.Sender) ContactService {
	return &contactService{sender: sender}
}

// Submit sends one notification. Transport failures are returned unchanged.
func (s *contactService) Submit(ctx context.Context, msg ContactMessage) error {
	return s.sender.Send(ctx, ContactSubject, FormatContactMessage(msg))
}

// FormatContactMessage renders the notification body.
func FormatContactMessage(msg ContactMessage) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s", msg.Name, msg.Email, msg.Phone, msg.Message)
}
