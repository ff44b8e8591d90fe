package events

import (
	"context"
	"log/slog"

	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/middleware"
)

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(ctx context.Context, topic string, key string, _ any) error {
	middleware.GetLoggerFromCtx(ctx).Debug("Event dropped, no publisher configured",
		slog.String("topic", topic), slog.String("key", key))
	return nil
}

func (NoopPublisher) Close() error { return nil }
