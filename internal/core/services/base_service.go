package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/middleware"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events  portssvc.EventPublisher
	Metrics *metrics.LedgerMetrics
	Clock   func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs an expected business refusal
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current UTC time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Publish sends an event after a committed change. A failure is logged and swallowed:
// the change it describes is already durable.
func (s *BaseService) Publish(ctx context.Context, topic, key string, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, topic, key, payload); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("topic", topic),
			slog.String("key", key))
	}
}
