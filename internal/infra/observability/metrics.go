package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters the payment orchestrator reports. All fields
// are registered against the registerer passed to NewMetrics; pass
// prometheus.DefaultRegisterer in production.
type Metrics struct {
	PaymentsCreated    *prometheus.CounterVec
	StatusUpdates      *prometheus.CounterVec
	Refunds            prometheus.Counter
	GatewayErrors      *prometheus.CounterVec
	Conflicts          prometheus.Counter
	ReconciliationGaps prometheus.Counter
	AuditDropped       prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PaymentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "created_total",
			Help:      "Payments created, by method.",
		}, []string{"method"}),
		StatusUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "status_updates_total",
			Help:      "Successful status transitions, by target status.",
		}, []string{"status"}),
		Refunds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "refunds_total",
			Help:      "Refunds applied.",
		}),
		GatewayErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "gateway_errors_total",
			Help:      "Failed gateway calls, by operation.",
		}, []string{"op"}),
		Conflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "conflicts_total",
			Help:      "Conditional writes lost to a concurrent mutation.",
		}),
		ReconciliationGaps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "reconciliation_gaps_total",
			Help:      "Refunds accepted by the gateway but not recorded locally.",
		}),
		AuditDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "audit_dropped_total",
			Help:      "Audit events dropped because the buffer was full.",
		}),
	}
}
