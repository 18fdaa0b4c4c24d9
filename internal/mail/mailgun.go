package mail

import (
	"context"
	"fmt"
	"os"

	"github.com/mailgun/mailgun-go/v4"
)

// Sender delivers a contact message. The Mailgun implementation is
// swapped for a double in handler tests.
type Sender interface {
	Send(ctx context.Context, from, subject, body string) error
}

// MailgunSender relays through the Mailgun HTTP API.
type MailgunSender struct {
	mg        *mailgun.MailgunImpl
	recipient string
}

// NewMailgunSender builds a sender from MAILGUN_DOMAIN and
// MAILGUN_API_KEY. Returns a nil Sender when either is unset; the
// return type is the interface so the nil survives assignment into
// Handler.Sender intact.
func NewMailgunSender(recipient string) Sender {
	domain := os.Getenv("MAILGUN_DOMAIN")
	key := os.Getenv("MAILGUN_API_KEY")
	if domain == "" || key == "" {
		return nil
	}
	return &MailgunSender{
		mg:        mailgun.NewMailgun(domain, key),
		recipient: recipient,
	}
}

func (s *MailgunSender) Send(ctx context.Context, from, subject, body string) error {
	m := s.mg.NewMessage(from, subject, body, s.recipient)
	if _, _, err := s.mg.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
