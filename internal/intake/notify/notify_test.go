package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/notify"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, m notify.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, m)
	return "msg-1", nil
}

func TestNotifyWelcome(t *testing.T) {
	sender := &recordingSender{}
	n := notify.NewNotifier(sender, "")

	require.NoError(t, n.NotifyWelcome(context.Background(), "jane@acme.com", "Jane Doe"))
	require.Equal(t, []notify.Message{{
		From:    "onboarding@resend.dev",
		To:      "jane@acme.com",
		Subject: "Welcome to Our Firm!",
		HTML:    "<strong>Hello Jane Doe,</strong><br />Welcome to our client portal!",
	}}, sender.sent)
}

func TestNotifyWelcomeEscapesName(t *testing.T) {
	sender := &recordingSender{}
	n := notify.NewNotifier(sender, "firm@example.com")

	require.NoError(t, n.NotifyWelcome(context.Background(), "x@y.co", `<script>alert("x")</script>`))
	require.Len(t, sender.sent, 1)
	require.Equal(t, "firm@example.com", sender.sent[0].From)
	require.NotContains(t, sender.sent[0].HTML, "<script>")
	require.Contains(t, sender.sent[0].HTML, "&lt;script&gt;")
}

func TestNotifyRejectsEmptyRecipient(t *testing.T) {
	sender := &recordingSender{}
	err := notify.NewNotifier(sender, "").NotifyWelcome(context.Background(), "  ", "Jane")
	require.ErrorIs(t, err, notify.ErrInvalidRecipient)
	require.Empty(t, sender.sent)
}

func TestNotifyWrapsSenderError(t *testing.T) {
	boom := errors.New("provider down")
	err := notify.NewNotifier(&recordingSender{err: boom}, "").NotifyWelcome(context.Background(), "a@b.co", "Al")
	require.ErrorIs(t, err, boom)
}

func TestSendConfirmation(t *testing.T) {
	sender := &recordingSender{}
	link := "https://intake.example.com/api/auth/confirm?token=abc&x=1"

	require.NoError(t, notify.NewNotifier(sender, "").SendConfirmation(context.Background(), "ops@firm.com", link))
	require.Len(t, sender.sent, 1)
	require.Equal(t, notify.ConfirmationSubject, sender.sent[0].Subject)
	require.Contains(t, sender.sent[0].HTML, `href="https://intake.example.com/api/auth/confirm?token=abc&amp;x=1"`)
}

func TestLogSender(t *testing.T) {
	id, err := notify.LogSender{}.Send(context.Background(), notify.Message{To: "a@b.co"})
	require.NoError(t, err)
	require.Contains(t, id, "log-")
}

func TestResendSender(t *testing.T) {
	var got struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	sender := notify.NewResendSender("re_test_key", notify.WithBaseURL(base))
	id, err := sender.Send(context.Background(), notify.Message{
		From: "onboarding@resend.dev", To: "jane@acme.com", Subject: "Hi", HTML: "<b>x</b>",
	})
	require.NoError(t, err)
	require.Equal(t, "re_123", id)
	require.Equal(t, "Bearer re_test_key", auth)
	require.Equal(t, []string{"jane@acme.com"}, got.To)
	require.Equal(t, "<b>x</b>", got.HTML)
}

func TestResendSenderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	_, err = notify.NewResendSender("k", notify.WithBaseURL(base)).Send(context.Background(), notify.Message{To: "x"})
	require.Error(t, err)
}

type blockingNotifier struct {
	release chan struct{}
	err     error
	ctxErr  error
}

func (n *blockingNotifier) NotifyWelcome(ctx context.Context, email, name string) error {
	<-n.release
	n.ctxErr = ctx.Err()
	return n.err
}

func TestDispatcherDeliversResult(t *testing.T) {
	boom := errors.New("boom")
	n := &blockingNotifier{release: make(chan struct{}), err: boom}

	var hooked error
	d := notify.NewDispatcher(n, notify.WithResultHook(func(err error) { hooked = err }))

	ctx, cancel := context.WithCancel(context.Background())
	result := d.Dispatch(ctx, "a@b.co", "Al")
	cancel()
	close(n.release)

	select {
	case err := <-result:
		require.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	require.NoError(t, d.Wait(context.Background()))
	require.ErrorIs(t, hooked, boom)
	require.NoError(t, n.ctxErr, "send must not observe the caller's cancellation")

	_, open := <-result
	require.False(t, open)
}

func TestDispatcherWaitHonoursContext(t *testing.T) {
	n := &blockingNotifier{release: make(chan struct{})}
	d := notify.NewDispatcher(n)
	d.Dispatch(context.Background(), "a@b.co", "Al")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(n.release)
	require.NoError(t, d.Wait(context.Background()))
}
