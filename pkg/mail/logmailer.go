package mail

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// LogMailer records outbound messages in the application log instead of sending
// them. It substitutes for a real SMTP provider in environments without
// credentials so reminder delivery stays observable end to end.
type LogMailer struct {
	log  *zap.Logger
	sent []Message
}

// NewLogMailer constructs a LogMailer writing through the supplied logger.
func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{log: log}
}

// Send logs the message and records it for later inspection.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.sent = append(m.sent, msg)
	m.log.Info("email delivery skipped (log-only mailer)",
		zap.String("to", strings.Join(msg.To, ", ")),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Sent returns the messages captured so far.
func (m *LogMailer) Sent() []Message {
	return m.sent
}
