package mail

import (
	"context"
	"errors"
	"strings"

	"github.com/resendlabs/resend-go"
)

// ResendMailer delivers mail through the Resend HTTP API.
type ResendMailer struct {
	send func(*resend.SendEmailRequest) error
	from string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return nil, ErrMailerNotConfigured
	}
	client := resend.NewClient(apiKey)
	return &ResendMailer{
		send: func(req *resend.SendEmailRequest) error {
			_, err := client.Emails.Send(req)
			return err
		},
		from: strings.TrimSpace(from),
	}, nil
}

// Send returns as soon as ctx is done. The API call itself has no context
// hook in this client version, so it finishes in the background.
func (m *ResendMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("mailer: recipient is required")
	}
	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	done := make(chan error, 1)
	go func() { done <- m.send(req) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
