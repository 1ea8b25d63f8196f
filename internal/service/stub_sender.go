package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"invoice-notifier/internal/models"
	"invoice-notifier/internal/notifier"

	"go.uber.org/zap"
)

// StubSender logs messages instead of sending them. Used for local runs.
type StubSender struct {
	logger *zap.Logger
	seq    atomic.Int64
}

var _ notifier.Dispatcher = (*StubSender)(nil)

func NewStubSender(logger *zap.Logger) *StubSender {
	return &StubSender{logger: logger.Named("stub_sender")}
}

func (s *StubSender) Send(ctx context.Context, msg models.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := fmt.Sprintf("stub-%d", s.seq.Add(1))
	s.logger.Info("STUB: sending FCM message",
		zap.String("topic", msg.Topic),
		zap.String("title", msg.Notification.Title),
		zap.String("body", msg.Notification.Body),
		zap.String("message_id", id),
	)
	return id, nil
}
