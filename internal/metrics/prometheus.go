package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Registry          *prometheus.Registry
	ApartmentsCreated prometheus.Counter
	ReviewsCreated    prometheus.Counter
	VotesCast         prometheus.Counter
	UpstreamErrors    *prometheus.CounterVec
	RequestLatency    *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		ApartmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "apartments_created_total",
			Help:      "Total number of apartments created.",
		}),
		ReviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Total number of reviews submitted.",
		}),
		VotesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Total number of apartment votes.",
		}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Failures of the database or attachment storage by operation.",
		}, []string{"op"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	registry.MustRegister(
		m.ApartmentsCreated,
		m.ReviewsCreated,
		m.VotesCast,
		m.UpstreamErrors,
		m.RequestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ApartmentCreated() {
	if m != nil {
		m.ApartmentsCreated.Inc()
	}
}

func (m *Metrics) ReviewCreated() {
	if m != nil {
		m.ReviewsCreated.Inc()
	}
}

func (m *Metrics) VoteCast() {
	if m != nil {
		m.VotesCast.Inc()
	}
}

func (m *Metrics) UpstreamError(op string) {
	if m != nil {
		m.UpstreamErrors.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) ObserveRequest(method, status string, seconds float64) {
	if m != nil {
		m.RequestLatency.WithLabelValues(method, status).Observe(seconds)
	}
}
