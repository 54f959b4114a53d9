package email

import (
	"context"
	"unicode/utf8"

	"colchester-plumber-api/pkg/logger"
)

const previewLength = 100

// LogSender does not deliver anything; it logs what would have been sent.
// Use it for local development without provider credentials.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	attrs := []any{
		"to", msg.To.Email,
		"from", msg.From.Email,
		"subject", msg.Subject,
		"preview", preview(msg.Text, previewLength),
	}
	if msg.ReplyTo != nil {
		attrs = append(attrs, "reply_to", msg.ReplyTo.Email)
	}
	logger.Log.InfoContext(ctx, "Email simulated (log driver)", attrs...)
	return nil
}

func (s *LogSender) IsConfigured() bool {
	return true
}

func (s *LogSender) Name() string {
	return "log"
}

// preview truncates s to at most n runes, marking the cut with "..."
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
