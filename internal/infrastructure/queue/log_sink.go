package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// LogSink writes activity events to the structured log. It backs the activity
// log when no MongoDB is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) ports.ActivitySink {
	return &LogSink{log: log.With().Str("component", "activity").Logger()}
}

func (s *LogSink) Insert(_ context.Context, event domain.ActivityEvent) error {
	s.log.Info().
		Str("email", event.Email).
		Str("action", event.Action).
		Str("detail", event.Detail).
		Time("at", event.At).
		Msg("activity")
	return nil
}
