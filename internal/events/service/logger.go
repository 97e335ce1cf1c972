package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/willowcart/relay/internal/events/domain"
)

// Logger is a simple Publisher that logs events.
// In production, replace with a queue or external sink.

type Logger struct {
	log zerolog.Logger
}

func NewLogger(l zerolog.Logger) *Logger { return &Logger{log: l} }

func (l *Logger) Publish(ctx context.Context, e domain.Event) error {
	l.log.Info().
		Str("id", e.ID.String()).
		Str("type", e.Type).
		Fields(map[string]any{"meta": e.Meta}).
		Time("ts", e.Time).
		Msg("event")
	return nil
}
