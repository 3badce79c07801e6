package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("venture-forecast")

var (
	// RequestsTotal counts handled API requests by route and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venture_forecast_http_requests_total",
			Help: "Number of API requests handled",
		},
		[]string{"route", "status"},
	)

	// RequestDuration observes API latency by route.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "venture_forecast_http_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// ProjectionCache counts projection cache lookups by result (hit, miss, error).
	ProjectionCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venture_forecast_projection_cache_total",
			Help: "Projection cache lookups",
		},
		[]string{"result"},
	)

	// ProjectionErrors counts projections rejected by stage (decode, config, compute, render).
	ProjectionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venture_forecast_projection_errors_total",
			Help: "Projection requests that failed",
		},
		[]string{"stage"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// instrument records request count and latency for route.
func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
