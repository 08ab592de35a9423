package notify

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/intake/pkg/idx"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// LogSender writes messages to the log instead of sending them. It is used
// when no provider key is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, m Message) (string, error) {
	id := "log-" + idx.New().String()
	slogx.FromContext(ctx).Info("email not sent: no provider configured",
		slog.String("message_id", id),
		slog.String("from", m.From),
		slog.String("to", m.To),
		slog.String("subject", m.Subject),
		slog.String("html", m.HTML),
	)
	return id, nil
}
