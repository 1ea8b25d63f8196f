package service

import (
	"context"
	"fmt"

	"invoice-notifier/internal/config"
	"invoice-notifier/internal/models"
	"invoice-notifier/internal/notifier"

	fcm "firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// MessagingClient is the part of the FCM client used by FCMSender.
type MessagingClient interface {
	Send(ctx context.Context, message *fcm.Message) (string, error)
	SendDryRun(ctx context.Context, message *fcm.Message) (string, error)
}

// FCMSender delivers messages to FCM topics.
type FCMSender struct {
	client MessagingClient
	dryRun bool
	logger *zap.Logger
}

var _ notifier.Dispatcher = (*FCMSender)(nil)

// NewFCMSender creates a sender backed by a Firebase messaging client.
func NewFCMSender(ctx context.Context, cfg config.FCMConfig, projectID string, logger *zap.Logger) (*FCMSender, error) {
	app, err := NewFirebaseApp(ctx, projectID, cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting FCM Messaging client: %w", err)
	}

	logger.Info("FCM Sender initialized",
		zap.String("credentials_path", cfg.CredentialsPath),
		zap.Bool("dry_run", cfg.DryRun),
	)
	return NewFCMSenderWithClient(messagingClient, cfg.DryRun, logger), nil
}

func NewFCMSenderWithClient(client MessagingClient, dryRun bool, logger *zap.Logger) *FCMSender {
	return &FCMSender{
		client: client,
		dryRun: dryRun,
		logger: logger.Named("fcm_sender"),
	}
}

// ToFCMMessage converts msg to the FCM wire type.
func ToFCMMessage(msg models.Message) *fcm.Message {
	return &fcm.Message{
		Notification: &fcm.Notification{
			Title: msg.Notification.Title,
			Body:  msg.Notification.Body,
		},
		Topic: msg.Topic,
	}
}

// Send makes a single attempt; retries belong to the caller's platform.
func (s *FCMSender) Send(ctx context.Context, msg models.Message) (string, error) {
	if msg.Topic == "" {
		return "", fmt.Errorf("fcm: message has no topic")
	}

	send := s.client.Send
	if s.dryRun {
		send = s.client.SendDryRun
	}

	id, err := send(ctx, ToFCMMessage(msg))
	if err != nil {
		s.logger.Error("Error sending FCM message",
			zap.String("topic", msg.Topic),
			zap.String("reason", classifyError(err)),
			zap.Bool("dry_run", s.dryRun),
			zap.Error(err),
		)
		return "", fmt.Errorf("fcm send to topic %s: %w", msg.Topic, err)
	}

	s.logger.Debug("FCM message accepted", zap.String("topic", msg.Topic), zap.String("message_id", id))
	return id, nil
}

func classifyError(err error) string {
	switch {
	case fcm.IsQuotaExceeded(err):
		return "quota_exceeded"
	case fcm.IsUnavailable(err):
		return "unavailable"
	case fcm.IsInternal(err):
		return "internal"
	case fcm.IsInvalidArgument(err):
		return "invalid_argument"
	case fcm.IsThirdPartyAuthError(err), fcm.IsSenderIDMismatch(err):
		return "auth"
	default:
		return "unknown"
	}
}
