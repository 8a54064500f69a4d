// Package metrics exposes Prometheus counters for admissions and waiting list
// movements. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Admissions  *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Promotions  prometheus.Counter
	Compactions prometheus.Counter
	TxRetries   prometheus.Counter
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Admissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_admitted_total",
			Help: "Registrations admitted, by outcome (confirmed or waiting_list).",
		}, []string{"outcome"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_rejected_total",
			Help: "Registration creates, updates and deletes rejected, by error code.",
		}, []string{"code"}),
		Promotions: f.NewCounter(prometheus.CounterOpts{
			Name: "waiting_list_promotions_total",
			Help: "Waiting list heads promoted to a confirmed seat.",
		}),
		Compactions: f.NewCounter(prometheus.CounterOpts{
			Name: "waiting_list_compactions_total",
			Help: "Waiting list gaps closed after a departure or move.",
		}),
		TxRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "registration_tx_retries_total",
			Help: "Event transactions retried after a serialization failure or deadlock.",
		}),
	}
}

// ObserveAdmission counts an admitted registration.
func (m *Metrics) ObserveAdmission(outcome string) {
	if m == nil {
		return
	}
	m.Admissions.WithLabelValues(outcome).Inc()
}

// ObserveRejection counts a rejected mutation.
func (m *Metrics) ObserveRejection(code string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(code).Inc()
}

// Compacted implements queue.Observer.
func (m *Metrics) Compacted(uuid.UUID) {
	if m == nil {
		return
	}
	m.Compactions.Inc()
}

// Promoted implements queue.Observer.
func (m *Metrics) Promoted(uuid.UUID) {
	if m == nil {
		return
	}
	m.Promotions.Inc()
}

// TxRetried counts a retried transaction.
func (m *Metrics) TxRetried() {
	if m == nil {
		return
	}
	m.TxRetries.Inc()
}
