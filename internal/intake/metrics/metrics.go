package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intake"

// Metrics holds the Prometheus collectors for the service. Each instance
// owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Submissions   *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Signups       prometheus.Counter
	Workflows     prometheus.Gauge
}

// New creates and registers all metrics, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Client intake submissions by outcome.",
		}, []string{"outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "welcome_notifications_total",
			Help:      "Welcome emails handed to the provider, by result.",
		}, []string{"result"}),
		Signups: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_signups_total",
			Help:      "Operator accounts created.",
		}),
		Workflows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workflows",
			Help:      "Per-session intake workflows currently held in memory.",
		}),
	}
}

// ObserveSubmission counts a submission outcome.
func (m *Metrics) ObserveSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveNotification counts a welcome email result.
func (m *Metrics) ObserveNotification(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.Notifications.WithLabelValues(result).Inc()
}

// IncrementSignups counts a new operator account.
func (m *Metrics) IncrementSignups() {
	m.Signups.Inc()
}

// SetWorkflows records the number of live workflows.
func (m *Metrics) SetWorkflows(n int) {
	m.Workflows.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
