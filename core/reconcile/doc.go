// Package reconcile implements the author/book reconciliation loop.
//
// Each input row names an author and a book by their natural keys. The
// reconciler checks both against a Store and inserts only what is missing,
// always followed by a library entry linking the two. Rows whose author and
// book already exist are skipped without writes.
//
// # Statistics
//
// Reconcile returns a Stats value accumulated over the run:
//
//	stats, err := reconcile.Reconcile(ctx, rows, store, logger)
//	// stats.Processed == stats.Skipped + stats.Inserted
//
// # Errors
//
// Failures are classified into a closed set of kinds (input not found, parse
// error, constraint violation, connectivity). Callers match them with
// errors.Is against the package sentinels or inspect KindOf(err).
//
//	if errors.Is(err, reconcile.ErrConstraintViolation) {
//	    // an ID was reused under a different name
//	}
//
// The reconciler never recovers from an error. It stops at the first one and
// leaves commit/rollback to the caller, which owns the transaction.
package reconcile
