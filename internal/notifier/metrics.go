package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSent           = "sent"
	outcomeSkippedDeleted = "skipped_deleted"
	outcomeFailed         = "failed"
)

// Metrics groups the notifier collectors.
type Metrics struct {
	events           *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
}

// NewMetrics registers the notifier collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_notifier_events_total",
				Help: "Total number of handled invoice change events by outcome.",
			},
			[]string{"outcome"},
		),
		dispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoice_notifier_dispatch_duration_seconds",
			Help:    "Duration of notification dispatch calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
