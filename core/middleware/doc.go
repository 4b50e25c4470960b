// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the ingest endpoint.
//   - rayid: a unique Request ID (RayID) for every incoming request, stored in
//     the context and echoed in the response headers for tracing.
//
// Both are registered globally by the serve command.
package middleware
