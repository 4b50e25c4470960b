// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs related to a single ingest request can be
// correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Ingestion finished", zap.Int("records_processed", stats.Processed))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Ingest failed", zap.Error(err))
package logger
