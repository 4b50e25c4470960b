package metrics

import (
	"time"

	"library-ingest/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "library_ingest"

// Metrics records ingestion runs. A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Ingestion runs by result (success or error kind).",
		}, []string{"result"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows reconciled by outcome. Rows of failed runs are counted although they were rolled back.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of ingestion runs, staging included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.runs, m.rows, m.duration)
	return m
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(stats reconcile.Stats, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = reconcile.KindOf(err).String()
	}
	m.runs.WithLabelValues(result).Inc()
	m.rows.WithLabelValues("skipped").Add(float64(stats.Skipped))
	m.rows.WithLabelValues("inserted").Add(float64(stats.Inserted))
	m.duration.Observe(elapsed.Seconds())
}
