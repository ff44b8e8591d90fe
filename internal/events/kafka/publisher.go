package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

// Publisher writes ledger events as JSON messages keyed by aggregate id.
// With a fixed topic every event lands there and the event type travels in a header;
// otherwise each event goes to the topic it names.
type Publisher struct {
	writer     *kafka.Writer
	fixedTopic string
}

// NewPublisher creates a publisher for brokers. topic may be empty.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
		fixedTopic: topic,
	}
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// Publish marshals event and writes it synchronously.
func (p *Publisher) Publish(ctx context.Context, topic string, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   data,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(topic)}},
		Time:    time.Now().UTC(),
	}
	if p.fixedTopic != "" {
		msg.Topic = p.fixedTopic
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the connection pool.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
