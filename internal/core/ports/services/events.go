package services

import "context"

// EventPublisher delivers ledger events to downstream consumers after a change commits.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload any) error
	Close() error
}
