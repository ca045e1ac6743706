package mailx

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dabotcentral/central/pkg/slogx"
)

// LogSender writes messages to the request logger instead of delivering them.
// It is meant for local development, where reading the login code from the
// log replaces an inbox.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("email not delivered (log provider)",
		slog.String("from", msg.From),
		slog.String("to", strings.Join(msg.To, ", ")),
		slog.String("subject", msg.Subject),
		slog.String("html_body", msg.HTMLBody),
		slog.String("text_body", msg.TextBody),
	)
	return nil
}
