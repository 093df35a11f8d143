package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	paymentInitiatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_initiated_total",
			Help: "Payment initiations by result",
		},
		[]string{"result"},
	)

	paymentVerifiedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verified_total",
			Help: "Payment verifications by resulting status",
		},
		[]string{"status"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_notifications_total",
			Help: "Payment confirmation notifications by stage and result",
		},
		[]string{"stage", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(paymentInitiatedTotal)
	prometheus.MustRegister(paymentVerifiedTotal)
	prometheus.MustRegister(notificationsTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(method, endpoint, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

func RecordPaymentInitiated(result string) {
	paymentInitiatedTotal.WithLabelValues(result).Inc()
}

func RecordPaymentVerified(status string) {
	paymentVerifiedTotal.WithLabelValues(status).Inc()
}

// RecordNotification counts a notification at stage "enqueue" or "send".
func RecordNotification(stage, result string) {
	notificationsTotal.WithLabelValues(stage, result).Inc()
}
