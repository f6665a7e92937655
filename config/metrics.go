package config

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns a private Prometheus registry so tests can build as many as
// they like.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	proposalsCreated prometheus.Counter
	pdfsRendered     *prometheus.CounterVec
	remindersSent    *prometheus.CounterVec
}

// AppMetrics is shared by the router and the services. main replaces it
// once at startup.
var AppMetrics = NewMetrics()

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		proposalsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "proposals_created_total",
			Help: "Proposals saved.",
		}),
		pdfsRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proposal_pdfs_rendered_total",
				Help: "Proposal PDFs rendered by language.",
			},
			[]string{"lang"},
		),
		remindersSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staff_reminders_sent_total",
				Help: "Staff reminder SMS attempts by outcome.",
			},
			[]string{"status"},
		),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) IncrProposalCreated() {
	m.proposalsCreated.Inc()
}

func (m *Metrics) IncrPDFRendered(lang string) {
	m.pdfsRendered.WithLabelValues(lang).Inc()
}

func (m *Metrics) IncrReminder(status string) {
	m.remindersSent.WithLabelValues(status).Inc()
}
