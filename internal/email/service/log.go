package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	edomain "github.com/willowcart/relay/internal/email/domain"
)

// Ensure Log implements domain.Sender
var _ edomain.Sender = (*Log)(nil)

// Log is a development sender that writes the message to the log
// instead of dispatching it. It never fails.
type Log struct {
	log zerolog.Logger
}

func NewLog(l zerolog.Logger) *Log { return &Log{log: l} }

func (s *Log) Send(ctx context.Context, msg edomain.Message) (string, error) {
	id := "log-" + uuid.NewString()
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Str("id", id).
		Msg("email logged instead of sent")
	return id, nil
}
