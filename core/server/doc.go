// Package server holds the HTTP server configuration.
//
// The serve command starts a Fiber app from these settings; this package only
// defines the listen port, the API key guarding the ingest endpoint and the
// graceful shutdown bound.
package server
