package metrics

import (
	"errors"
	"testing"
	"time"

	"library-ingest/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun(reconcile.Stats{Processed: 3, Skipped: 1, Inserted: 2}, nil, 150*time.Millisecond)
	m.ObserveRun(reconcile.Stats{Processed: 1, Inserted: 1}, reconcile.ParseErrorf(3, "bad"), time.Millisecond)
	m.ObserveRun(reconcile.Stats{}, errors.New("config"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("parse_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("unclassified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rows.WithLabelValues("skipped")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rows.WithLabelValues("inserted")))

	var sample dto.Metric
	require.NoError(t, m.duration.Write(&sample))
	assert.Equal(t, uint64(3), sample.GetHistogram().GetSampleCount())
}

func TestObserveRun_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(reconcile.Stats{Processed: 1}, nil, time.Second)
	})
}
