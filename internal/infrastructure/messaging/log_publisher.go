package messaging

import (
	"context"
	"log/slog"

	"github.com/okralabs/okra/pkg/events"
)

// LogEventPublisher implements port.EventPublisher by logging the envelope.
// It stands in for the Kafka publisher when no broker is configured, keeping
// the decision stream observable in development.
type LogEventPublisher struct {
	logger *slog.Logger
}

// NewLogEventPublisher creates a log-backed publisher.
func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish logs the event envelope attributes.
func (p *LogEventPublisher) Publish(ctx context.Context, event events.CloudEvent) error {
	p.logger.InfoContext(ctx, "decision event",
		"event_type", event.Type,
		"event_id", event.ID,
		"source", event.Source,
		"subject", event.Subject,
	)
	return nil
}

// Close is a no-op.
func (p *LogEventPublisher) Close() error { return nil }
