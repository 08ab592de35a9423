package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// ResendOption configures a ResendSender.
type ResendOption func(*resend.Client)

// WithBaseURL points the client at another API root, for tests.
func WithBaseURL(u *url.URL) ResendOption {
	return func(c *resend.Client) { c.BaseURL = u }
}

// NewResendSender builds a sender authenticated with apiKey.
func NewResendSender(apiKey string, opts ...ResendOption) *ResendSender {
	client := resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, apiKey)
	for _, opt := range opts {
		opt(client)
	}
	return &ResendSender{client: client}
}

func (s *ResendSender) Send(ctx context.Context, m Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{m.To},
		Subject: m.Subject,
		Html:    m.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
