package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/okralabs/okra/pkg/events"
	pkgkafka "github.com/okralabs/okra/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing CloudEvents
// to the decision stream, keyed by quote id so a re-evaluated quote lands on
// the same partition.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher over the given producer.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, logger: logger}
}

// Publish serialises and sends one decision event.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event events.CloudEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "publishing decision event",
		"event_type", event.Type,
		"event_id", event.ID,
		"subject", event.Subject,
		"payload_size", len(payload),
	)

	msg := pkgkafka.Message{
		Key:   []byte(messageKey(event)),
		Value: payload,
		Headers: map[string]string{
			"content-type": events.ContentTypeJSON,
			"event_type":   event.Type,
		},
	}
	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}

// Close flushes the underlying producer.
func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

// messageKey extracts the quote id from the event payload, falling back to
// the event id for envelopes that carry no quote.
func messageKey(event events.CloudEvent) string {
	if id, ok := event.Data["quote_id"].(string); ok && id != "" {
		return id
	}
	if quote, ok := event.Data["quote"].(map[string]any); ok {
		if id, ok := quote["quote_id"].(string); ok && id != "" {
			return id
		}
	}
	return event.ID
}
