// Package mailer sends invite emails through SendGrid.
//
// Delivery is best-effort everywhere it is used: failures are logged by the
// caller and never abort a workflow.
package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Email is one outbound message.
type Email struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// SendGrid sends mail through the SendGrid v3 API.
type SendGrid struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGrid constructs a SendGrid sender.
func NewSendGrid(apiKey, from, fromName string) *SendGrid {
	return &SendGrid{apiKey: apiKey, from: from, fromName: fromName}
}

func (s *SendGrid) Send(ctx context.Context, e Email) error {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.from),
		e.Subject,
		sgmail.NewEmail(e.ToName, e.To),
		e.TextBody,
		e.HTMLBody,
	)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	return nil
}

// Discard drops every email. Used when no API key is configured and in
// tests.
type Discard struct{}

func (Discard) Send(ctx context.Context, e Email) error { return nil }
