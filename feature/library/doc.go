// Package library ingests author/book CSV files into the authors, books and
// library tables.
//
// Service.Ingest stages the input, then runs reconcile.Reconcile against a
// gorm-backed Store inside one transaction pinned to one connection. Any
// failure rolls the whole run back.
//
// The package also provides a sample file generator and the HTTP routes
// mounted by the serve command:
//
//	POST /library/ingest   {"path": "..."} or {"bucket": "...", "key": "..."}
//	GET  /library/schema   missing columns per table
package library
