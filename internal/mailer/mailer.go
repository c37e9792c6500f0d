// Package mailer abstracts transactional email delivery. Handlers
// depend on the Sender interface; the concrete implementation is the
// Resend HTTP API, selected at startup.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Attachment is one file attached to a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully composed notification email.
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	ReplyTo     string
	Attachments []Attachment
}

// ErrNotConfigured reports that no delivery API key is set.
var ErrNotConfigured = errors.New("mailer: delivery provider not configured")

// Sender dispatches a message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

type resendSender struct {
	client *resend.Client
}

// NewResendSender builds a Sender over the Resend API.
func NewResendSender(apiKey string) Sender {
	return &resendSender{client: resend.NewClient(apiKey)}
}

func (s *resendSender) Send(ctx context.Context, m Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{m.To},
		Subject: m.Subject,
		Html:    m.HTML,
		ReplyTo: m.ReplyTo,
	}
	for _, a := range m.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}

type disabledSender struct{}

// Disabled is the Sender used when no API key is configured. Every send
// fails with ErrNotConfigured; the endpoint maps that to a 500 with a
// configuration-error message instead of crashing at startup.
func Disabled() Sender { return disabledSender{} }

func (disabledSender) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}
