package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "craftedbyher"

// Registry is the application's metric registry.
var Registry = prometheus.NewRegistry()

var (
	OrderTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "Order status transitions, by target status.",
	}, []string{"to"})

	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "created_total",
		Help:      "Notifications written, by recipient role.",
	}, []string{"role"})

	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "failures_total",
		Help:      "Notification writes that failed after the order update succeeded.",
	})

	RecommendationSource = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "recommendations",
		Name:      "served_total",
		Help:      "Recommendation responses, by source (ml or local).",
	}, []string{"source"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		OrderTransitions,
		NotificationsCreated,
		NotificationFailures,
		RecommendationSource,
		HTTPDuration,
		prometheus.NewGoCollector(),
	)
}

type errorLogger struct{}

// Println implements promhttp.Logger
func (errorLogger) Println(v ...interface{}) {
	log.Error().Interface("err", v).Msg("metrics handler")
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		ErrorLog:      errorLogger{},
		ErrorHandling: promhttp.ContinueOnError,
	})
}
