package server

import (
	"context"
	"fmt"
	"net/http"

	"invoice-notifier/internal/config"
	"invoice-notifier/internal/middleware"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// EventFunc handles one CloudEvent; trigger.Router.HandleCloudEvent fits.
type EventFunc func(ctx context.Context, e event.Event) error

// NewEventHandler exposes fn as a CloudEvents HTTP receiver accepting both binary
// and structured content modes.
func NewEventHandler(ctx context.Context, fn EventFunc) (http.Handler, error) {
	p, err := cloudevents.NewHTTP()
	if err != nil {
		return nil, fmt.Errorf("create cloudevents protocol: %w", err)
	}
	h, err := cloudevents.NewHTTPReceiveHandler(ctx, p, func(ctx context.Context, e event.Event) error {
		return fn(ctx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("create cloudevents receiver: %w", err)
	}
	return h, nil
}

// NewRouter builds the HTTP surface: event ingress on POST /, /health and /metrics.
func NewRouter(cfg *config.Config, log *zap.Logger, events http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapLogger(log.Named("http")))
	router.Use(gin.Recovery())

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.POST("/", gin.WrapH(events))

	// Applied after the routes so /metrics itself is registered by the middleware.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	return router
}
