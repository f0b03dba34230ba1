package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the ledger.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	operationDuration *prometheus.HistogramVec
	operationsTotal   *prometheus.CounterVec
	snapshotSaves     *prometheus.CounterVec
	snapshotLoads     *prometheus.CounterVec
}

// Stats is a point-in-time view of operation counters, rendered by the
// bank-statistics screen.
type Stats struct {
	OperationsAccepted float64
	OperationsRejected float64
	SnapshotSaves      float64
	SnapshotLoads      float64
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total ledger operations by operation and status.",
			},
			[]string{"operation", "status"},
		),
		snapshotSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_snapshot_saves_total",
				Help: "Total snapshot save attempts by status.",
			},
			[]string{"status"},
		),
		snapshotLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_snapshot_loads_total",
				Help: "Total snapshot load attempts by status.",
			},
			[]string{"status"},
		),
	}
}

// RecordOperationDuration records how long a ledger operation took.
func (m *Metrics) RecordOperationDuration(operation string, d time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrOperation increments the operation counter with a status label
// ("accepted" or "rejected").
func (m *Metrics) IncrOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

// IncrSnapshotSave increments the snapshot save counter.
func (m *Metrics) IncrSnapshotSave(status string) {
	m.snapshotSaves.WithLabelValues(status).Inc()
}

// IncrSnapshotLoad increments the snapshot load counter.
func (m *Metrics) IncrSnapshotLoad(status string) {
	m.snapshotLoads.WithLabelValues(status).Inc()
}

// GetStats gathers current counter values for the statistics screen.
// Note: Prometheus counters expose cumulative values.
func (m *Metrics) GetStats() Stats {
	accepted := float64(0)
	rejected := float64(0)
	for _, op := range []string{
		"register_customer", "create_account", "deposit", "withdraw", "transfer",
	} {
		accepted += getCounterValue(m.operationsTotal, op, "accepted")
		rejected += getCounterValue(m.operationsTotal, op, "rejected")
	}

	return Stats{
		OperationsAccepted: accepted,
		OperationsRejected: rejected,
		SnapshotSaves:      getCounterValue(m.snapshotSaves, "success"),
		SnapshotLoads:      getCounterValue(m.snapshotLoads, "success"),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for
// the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
