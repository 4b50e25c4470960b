// Package metrics exposes Prometheus collectors for ingestion runs.
//
// The serve command registers them on its own registry and publishes it at
// /metrics. The ingest command runs without metrics (a nil *Metrics).
package metrics
