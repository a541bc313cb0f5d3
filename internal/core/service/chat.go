package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"map2map-portal/internal/core/domain/chat"
)

// DefaultChatDelay mimics the latency of a real assistant.
const DefaultChatDelay = time.Second

type ChatService struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewChatService(delay time.Duration, logger *slog.Logger) *ChatService {
	return &ChatService{delay: delay, logger: logger}
}

// Ask returns the canned reply after the configured delay, or the context
// error if the caller gives up first.
func (s *ChatService) Ask(ctx context.Context, query string) (string, error) {
	ctx, span := tracer.Start(ctx, "ChatService.Ask", trace.WithAttributes(attribute.Int("query.length", len(query))))
	defer span.End()

	reply, err := chat.MockReply(query)
	if err != nil {
		return "", err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.logger.DebugContext(ctx, "chat request abandoned", "error", ctx.Err())
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return reply, nil
}
