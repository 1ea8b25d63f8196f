// Package invoicenotifier is the Cloud Functions entry point. It forwards writes on
// invoices/{invoiceId} documents to the management_notifications FCM topic.
package invoicenotifier

import (
	"context"
	"sync"

	"invoice-notifier/internal/app"
	"invoice-notifier/internal/config"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/prometheus/client_golang/prometheus"
)

// FunctionName is the entry point configured at deploy time.
const FunctionName = "SendInvoiceNotification"

func init() {
	functions.CloudEvent(FunctionName, SendInvoiceNotification)
}

var (
	mu       sync.Mutex
	instance *app.App
)

// loadApp builds the app on first use. A failed build is retried by the next
// invocation instead of poisoning the instance.
func loadApp(ctx context.Context) (*app.App, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance, nil
	}

	cfg, err := config.LoadConfig(config.PathFromEnv(), "")
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return nil, err
	}
	instance = a
	return instance, nil
}

// SendInvoiceNotification handles a Firestore document event. Returning an error
// fails the invocation so the platform's retry policy applies.
func SendInvoiceNotification(ctx context.Context, e event.Event) error {
	a, err := loadApp(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	return a.Router.HandleCloudEvent(ctx, e)
}
