package app_test

import (
	"context"
	"testing"

	"invoice-notifier/internal/app"
	"invoice-notifier/internal/config"
	"invoice-notifier/internal/mocks"
	"invoice-notifier/internal/service"
	"invoice-notifier/internal/trigger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_StubDispatcher(t *testing.T) {
	cfg := &config.Config{Dispatcher: config.DispatcherStub, Port: "8080", Log: config.LogConfig{Level: "error"}}

	a, err := app.New(context.Background(), cfg, prometheus.NewRegistry())
	require.NoError(t, err)

	e, err := trigger.NewFirestoreEvent(trigger.FirestoreEventOptions{
		ProjectID: "acme-billing",
		Document:  "invoices/INV-42",
		After:     map[string]any{"id": "INV-42"},
	})
	require.NoError(t, err)
	assert.NoError(t, a.Router.HandleCloudEvent(context.Background(), e))
}

func TestNewDispatcher(t *testing.T) {
	d, err := app.NewDispatcher(context.Background(), &config.Config{Dispatcher: config.DispatcherStub}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &service.StubSender{}, d)

	_, err = app.NewDispatcher(context.Background(), &config.Config{Dispatcher: "pager"}, zap.NewNop())
	assert.Error(t, err)
}

func TestAssemble_WiresNotifierToRouter(t *testing.T) {
	dispatcher := mocks.NewMockDispatcher(t)
	dispatcher.On("Send", mock.Anything, mock.Anything).Return("msg-1", nil).Once()

	a, err := app.Assemble(&config.Config{Dispatcher: "mock"}, zap.NewNop(), dispatcher, prometheus.NewRegistry())
	require.NoError(t, err)

	change := trigger.Change{After: trigger.Snapshot{Fields: map[string]any{"id": "INV-1"}}}
	require.NoError(t, a.Router.Dispatch(context.Background(), change, trigger.Context{Document: "invoices/INV-1"}))
}
