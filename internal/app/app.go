// Package app wires the invoice notifier from configuration. Both the Cloud
// Function entry point and the standalone server build on it.
package app

import (
	"context"
	"fmt"

	"invoice-notifier/internal/config"
	"invoice-notifier/internal/logger"
	"invoice-notifier/internal/notifier"
	"invoice-notifier/internal/service"
	"invoice-notifier/internal/trigger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Router   *trigger.Router
	Notifier *notifier.Notifier
}

// New builds the logger and the configured dispatcher, then assembles the app.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dispatcher, err := NewDispatcher(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	return Assemble(cfg, log, dispatcher, reg)
}

// NewDispatcher returns the FCM sender, or the stub when configured.
func NewDispatcher(ctx context.Context, cfg *config.Config, log *zap.Logger) (notifier.Dispatcher, error) {
	switch cfg.Dispatcher {
	case config.DispatcherStub:
		log.Warn("Using stub dispatcher, notifications will only be logged")
		return service.NewStubSender(log), nil
	case config.DispatcherFCM:
		sender, err := service.NewFCMSender(ctx, cfg.FCM, cfg.ProjectID, log)
		if err != nil {
			return nil, fmt.Errorf("init FCM sender: %w", err)
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("unknown dispatcher %q", cfg.Dispatcher)
	}
}

// Assemble registers the notifier on a fresh router.
func Assemble(cfg *config.Config, log *zap.Logger, dispatcher notifier.Dispatcher, reg prometheus.Registerer) (*App, error) {
	router := trigger.NewRouter(log)
	n := notifier.New(dispatcher, notifier.NewMetrics(reg), log)
	if err := n.Register(router); err != nil {
		return nil, err
	}

	log.Info("Invoice notifier ready",
		zap.String("dispatcher", cfg.Dispatcher),
		zap.String("pattern", notifier.InvoicePattern),
		zap.String("topic", notifier.ManagementTopic),
	)
	return &App{Config: cfg, Logger: log, Router: router, Notifier: n}, nil
}
