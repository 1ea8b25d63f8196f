package notifier

import (
	"context"
	"fmt"
	"time"

	"invoice-notifier/internal/models"
	"invoice-notifier/internal/trigger"

	"go.uber.org/zap"
)

const (
	// InvoicePattern is the document path the notifier listens on.
	InvoicePattern = "invoices/{invoiceId}"
	// InvoiceIDParam names the wildcard that carries the document id.
	InvoiceIDParam = "invoiceId"

	NotificationTitle = "Invoice Updated"
	ManagementTopic   = "management_notifications"

	bodyFormat = "Invoice %s has been submitted or updated."
)

// Dispatcher sends a push message and returns the id assigned by the backend.
type Dispatcher interface {
	Send(ctx context.Context, msg models.Message) (string, error)
}

// Notifier forwards invoice writes to the management topic.
type Notifier struct {
	dispatcher Dispatcher
	metrics    *Metrics
	logger     *zap.Logger
}

func New(dispatcher Dispatcher, metrics *Metrics, logger *zap.Logger) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger.Named("notifier"),
	}
}

// Register subscribes the notifier to invoice document changes on src.
func (n *Notifier) Register(src trigger.Source) error {
	if err := src.Register(InvoicePattern, n.Handle); err != nil {
		return fmt.Errorf("register %s: %w", InvoicePattern, err)
	}
	return nil
}

// BuildMessage returns the notification announcing inv to management.
func BuildMessage(inv models.Invoice) models.Message {
	return models.Message{
		Notification: models.Notification{
			Title: NotificationTitle,
			Body:  fmt.Sprintf(bodyFormat, inv.DisplayID()),
		},
		Topic: ManagementTopic,
	}
}

// Handle sends one notification for a created or updated invoice. Deletions are
// ignored. Dispatch errors are returned so the platform can retry the invocation.
func (n *Notifier) Handle(ctx context.Context, change trigger.Change, ec trigger.Context) error {
	data := change.After.Data()
	if data == nil {
		n.metrics.events.WithLabelValues(outcomeSkippedDeleted).Inc()
		return nil
	}

	inv := models.InvoiceFromData(ec.Params[InvoiceIDParam], data)
	if !inv.HasID {
		n.logger.Warn("Invoice has no id field, using document id",
			zap.String("document_id", inv.DocumentID),
			zap.String("event_id", ec.EventID),
		)
	}

	start := time.Now()
	messageID, err := n.dispatcher.Send(ctx, BuildMessage(inv))
	n.metrics.dispatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		n.metrics.events.WithLabelValues(outcomeFailed).Inc()
		return fmt.Errorf("send notification for invoice %s: %w", inv.DisplayID(), err)
	}

	n.metrics.events.WithLabelValues(outcomeSent).Inc()
	n.logger.Info("Notification sent to management.",
		zap.String("invoice_id", inv.DisplayID()),
		zap.String("document_id", inv.DocumentID),
		zap.String("message_id", messageID),
		zap.String("event_id", ec.EventID),
	)
	return nil
}
