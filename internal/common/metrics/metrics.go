// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_applications_received_total",
			Help: "Total number of application submissions received",
		},
	)

	ApplicationsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_applications_processed_total",
			Help: "Total number of applications processed end to end",
		},
	)

	ApplicationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_applications_failed_total",
			Help: "Total number of applications rejected or failed, by error code",
		},
		[]string{"error_code"},
	)

	EmailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_email_send_duration_seconds",
			Help: "Duration of outbound email sends in seconds",
		},
		[]string{"recipient"},
	)
)
