package mailer

import "context"

// Email is one outbound transactional message.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers transactional email. Implementations: Resend for
// production, a recording fake in tests.
type Sender interface {
	Send(ctx context.Context, email Email) error
}
