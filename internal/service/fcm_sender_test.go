package service_test

import (
	"context"
	"errors"
	"testing"

	"invoice-notifier/internal/mocks"
	"invoice-notifier/internal/models"
	"invoice-notifier/internal/service"

	fcm "firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var invoiceMessage = models.Message{
	Notification: models.Notification{
		Title: "Invoice Updated",
		Body:  "Invoice INV-42 has been submitted or updated.",
	},
	Topic: "management_notifications",
}

var wantFCM = &fcm.Message{
	Notification: &fcm.Notification{
		Title: "Invoice Updated",
		Body:  "Invoice INV-42 has been submitted or updated.",
	},
	Topic: "management_notifications",
}

func TestToFCMMessage(t *testing.T) {
	assert.Equal(t, wantFCM, service.ToFCMMessage(invoiceMessage))
}

func TestFCMSender_Send(t *testing.T) {
	client := mocks.NewMockMessagingClient(t)
	client.On("Send", mock.Anything, wantFCM).Return("projects/acme/messages/123", nil).Once()

	sender := service.NewFCMSenderWithClient(client, false, zap.NewNop())
	id, err := sender.Send(context.Background(), invoiceMessage)

	require.NoError(t, err)
	assert.Equal(t, "projects/acme/messages/123", id)
	client.AssertNotCalled(t, "SendDryRun", mock.Anything, mock.Anything)
}

func TestFCMSender_DryRun(t *testing.T) {
	client := mocks.NewMockMessagingClient(t)
	client.On("SendDryRun", mock.Anything, wantFCM).Return("projects/acme/messages/fake", nil).Once()

	sender := service.NewFCMSenderWithClient(client, true, zap.NewNop())
	id, err := sender.Send(context.Background(), invoiceMessage)

	require.NoError(t, err)
	assert.Equal(t, "projects/acme/messages/fake", id)
}

func TestFCMSender_ErrorIsWrappedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	backendErr := errors.New("connection reset")
	client := mocks.NewMockMessagingClient(t)
	client.On("Send", mock.Anything, mock.Anything).Return("", backendErr).Once()

	sender := service.NewFCMSenderWithClient(client, false, zap.New(core))
	_, err := sender.Send(context.Background(), invoiceMessage)

	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown", entries[0].ContextMap()["reason"])
	assert.Equal(t, "management_notifications", entries[0].ContextMap()["topic"])
}

func TestFCMSender_RejectsMissingTopic(t *testing.T) {
	client := mocks.NewMockMessagingClient(t)
	sender := service.NewFCMSenderWithClient(client, false, zap.NewNop())

	_, err := sender.Send(context.Background(), models.Message{Notification: invoiceMessage.Notification})
	assert.Error(t, err)
	client.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
