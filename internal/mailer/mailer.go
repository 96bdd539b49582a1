// Package mailer provides transactional email delivery via the Resend API.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers email and returns the provider's message ID.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender implements Sender on top of the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend-backed sender.
// Returns nil if no API key is configured; callers must treat a nil
// sender as "email delivery unavailable" before attempting any send.
func NewResendSender(apiKey string) *ResendSender {
	if apiKey == "" {
		return nil
	}
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send delivers the message and returns the Resend email ID.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
