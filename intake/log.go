package intake

import (
	"context"

	"github.com/imkonsowa/restaurant-concierge/models"
	"go.uber.org/zap"
)

// LogSink writes each reservation to the structured log and nothing else.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Store(_ context.Context, r models.Reservation) error {
	s.logger.Info("reservation intake",
		zap.String("id", r.ID),
		zap.String("name", r.Name.String()),
		zap.String("partySize", r.PartySize.String()),
		zap.String("when", r.When.String()),
		zap.String("phone", r.Phone.String()),
		zap.String("email", r.Email.String()),
		zap.String("notes", r.Notes.String()),
		zap.Time("receivedAt", r.ReceivedAt),
	)

	return nil
}
