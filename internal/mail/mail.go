// Package mail delivers contact notifications through the site's own SMTP mailbox.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// ErrTransport wraps every failure to reach or authenticate with the relay.
var ErrTransport = errors.New("mail transport failed")

// Sender delivers a message to the site owner.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// SMTPConfig describes the outbound relay and the site mailbox.
type SMTPConfig struct {
	Host     string
	Port     int
	Address  string
	Password string
	Timeout  time.Duration
}

// SMTPSender sends from the site mailbox to itself over STARTTLS with PLAIN auth.
// There is no retry or queue.
type SMTPSender struct {
	cfg SMTPConfig
}

// Ensure SMTPSender implements Sender
var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender for the given relay.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

// Send delivers one message.
func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Address); err != nil {
		return fmt.Errorf("%w: sender address: %v", ErrTransport, err)
	}
	if err := msg.To(s.cfg.Address); err != nil {
		return fmt.Errorf("%w: recipient address: %v", ErrTransport, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Address),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("%w: client: %v", ErrTransport, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}
