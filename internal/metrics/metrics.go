package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Grading outcomes.
const (
	OutcomeGraded       = "graded"
	OutcomeNotFound     = "not_found"
	OutcomeInvalid      = "invalid"
	OutcomeStorageError = "storage_error"
)

// Metrics owns the service collectors on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Gradings        *prometheus.CounterVec
	Scores          prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		Gradings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_gradings_total",
				Help: "Quiz submissions by outcome",
			},
			[]string{"outcome"},
		),
		Scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quiz_score_percent",
			Help:    "Distribution of graded quiz scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
	}
	m.registry.MustRegister(m.RequestCounter, m.RequestDuration, m.Gradings, m.Scores)
	return m
}

// ObserveGrading records a submission outcome; score is only used for graded submissions.
func (m *Metrics) ObserveGrading(outcome string, score int) {
	m.Gradings.WithLabelValues(outcome).Inc()
	if outcome == OutcomeGraded {
		m.Scores.Observe(float64(score))
	}
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
