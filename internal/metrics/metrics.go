package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actions_evaluations_total",
			Help: "Total number of action-list evaluations",
		},
		[]string{"actor"},
	)

	cacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actions_cache_total",
			Help: "Event snapshot cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	messagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actions_messages_consumed_total",
			Help: "Invalidation messages consumed from RabbitMQ",
		},
		[]string{"routing_key", "outcome"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "actions_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "status"},
	)
)

// Actor labels for RecordEvaluation.
const (
	ActorOrganizer = "organizer"
	ActorUser      = "user"
	ActorAnonymous = "anonymous"
)

// Cache outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

func RecordEvaluation(actor string)         { evaluationsTotal.WithLabelValues(actor).Inc() }
func RecordCache(outcome string)            { cacheTotal.WithLabelValues(outcome).Inc() }
func RecordMessage(routingKey, outcome string) {
	messagesConsumedTotal.WithLabelValues(routingKey, outcome).Inc()
}
func ObserveHTTP(method, status string, d time.Duration) {
	httpDuration.WithLabelValues(method, status).Observe(d.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
