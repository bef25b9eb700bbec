// Package metrics exposes Prometheus collectors for submission processing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Total number of processed submissions by outcome",
		},
		[]string{"result"},
	)

	Emails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_emails_total",
			Help: "Total number of outbound email attempts by message and outcome",
		},
		[]string{"message", "result"},
	)

	EmailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inquiry_email_send_duration_seconds",
			Help:    "Duration of outbound email transport calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"message"},
	)
)

// ObserveSubmission counts one processed submission. result is ResultSuccess
// or the failure kind.
func ObserveSubmission(result string) {
	Submissions.WithLabelValues(result).Inc()
}

// ObserveEmail records one transport call for the given message type.
func ObserveEmail(message string, started time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	Emails.WithLabelValues(message, result).Inc()
	EmailSendDuration.WithLabelValues(message).Observe(time.Since(started).Seconds())
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
