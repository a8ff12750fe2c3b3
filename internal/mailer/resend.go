package mailer

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("mailer: missing API key")

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a Resend-backed sender. An empty API key is a
// configuration error surfaced on first send, not at startup, so local
// environments without email still boot.
func NewResendSender(apiKey, from string) *ResendSender {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &ResendSender{
		client: client,
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, email Email) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
