package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the structured log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.InfoContext(ctx, "travel log event",
		"type", e.Type,
		"user_id", e.UserID,
		"country_code", e.CountryCode,
		"city_id", e.CityID,
		"request_id", e.RequestID,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
