// Package notify delivers transactional email through an external provider.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/aussiebroadwan/intake/pkg/slogx"
)

const (
	DefaultFrom         = "onboarding@resend.dev"
	WelcomeSubject      = "Welcome to Our Firm!"
	ConfirmationSubject = "Confirm your account"
)

var ErrInvalidRecipient = errors.New("notify: recipient is required")

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(
		`<strong>Hello {{.Name}},</strong><br />Welcome to our client portal!`))

	confirmationTmpl = template.Must(template.New("confirmation").Parse(
		`<p>Thanks for signing up.</p><p><a href="{{.Link}}">Confirm your email address</a></p>` +
			`<p>If you did not create an account you can ignore this message.</p>`))
)

// Message is a single email handed to a provider.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender hands a message to a provider. The returned id is the provider's
// acknowledgement; delivery itself is not confirmed.
type Sender interface {
	Send(ctx context.Context, m Message) (id string, err error)
}

// WelcomeNotifier sends the fixed welcome email to a new client.
type WelcomeNotifier interface {
	NotifyWelcome(ctx context.Context, email, name string) error
}

// Notifier renders the fixed templates and sends them from a fixed address.
type Notifier struct {
	Sender Sender
	From   string
}

// NewNotifier returns a Notifier sending from from, or DefaultFrom if empty.
func NewNotifier(sender Sender, from string) *Notifier {
	if from == "" {
		from = DefaultFrom
	}
	return &Notifier{Sender: sender, From: from}
}

// NotifyWelcome sends the welcome template addressed to email, greeting name.
func (n *Notifier) NotifyWelcome(ctx context.Context, email, name string) error {
	html, err := render(welcomeTmpl, struct{ Name string }{name})
	if err != nil {
		return err
	}
	return n.send(ctx, email, WelcomeSubject, html)
}

// SendConfirmation sends an operator the link that confirms their account.
func (n *Notifier) SendConfirmation(ctx context.Context, email, link string) error {
	html, err := render(confirmationTmpl, struct{ Link string }{link})
	if err != nil {
		return err
	}
	return n.send(ctx, email, ConfirmationSubject, html)
}

func (n *Notifier) send(ctx context.Context, to, subject, html string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrInvalidRecipient
	}

	id, err := n.Sender.Send(ctx, Message{From: n.From, To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("notify: send %q: %w", subject, err)
	}

	slogx.FromContext(ctx).Debug("email accepted by provider", "subject", subject, "message_id", id)
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
