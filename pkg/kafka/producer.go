package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Config holds producer connection parameters. The decision stream is a
// single topic, so the writer is created once at startup.
type Config struct {
	Brokers []string
	Topic   string

	// BatchTimeout bounds how long a message may sit in the writer's batch
	// buffer before it is flushed.
	BatchTimeout time.Duration
}

// Message represents one record on the decision stream.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer wraps a kafka-go writer bound to the configured topic.
type Producer struct {
	writer *kafkago.Writer
	topic  string
}

// NewProducer creates a Producer for cfg.Topic.
func NewProducer(cfg Config) *Producer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = 10 * time.Millisecond
	}
	return &Producer{
		topic: cfg.Topic,
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: batchTimeout,
			RequiredAcks: kafkago.RequireAll,
		},
	}
}

// Publish sends messages to the configured topic.
func (p *Producer) Publish(ctx context.Context, messages ...Message) error {
	records := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		record := kafkago.Message{
			Key:   msg.Key,
			Value: msg.Value,
		}
		for k, v := range msg.Headers {
			record.Headers = append(record.Headers, kafkago.Header{
				Key:   k,
				Value: []byte(v),
			})
		}
		records = append(records, record)
	}

	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("closing writer for topic %s: %w", p.topic, err)
	}
	return nil
}
