package reconcile

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// Reconcile consumes rows in order and inserts whatever the store is missing.
//
// For each row the author and the book are checked independently. When both
// exist the row is skipped. Otherwise the missing author and/or book are
// inserted, followed by a library entry, and the row counts as inserted.
//
// The first error aborts the run. The stats accumulated up to that point are
// returned alongside it; rows that failed midway are not counted. Committing
// or rolling back is the caller's responsibility.
func Reconcile(ctx context.Context, rows RowReader, store Store, log *zap.Logger) (Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, NewError(KindConnectivity, "reconcile", err)
		}

		row, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, NewError(KindConnectivity, "read row", err)
		}

		skipped, err := reconcileRow(ctx, row, store, log)
		if err != nil {
			return stats, err
		}

		stats.Processed++
		if skipped {
			stats.Skipped++
		} else {
			stats.Inserted++
		}
	}

	return stats, nil
}

// reconcileRow applies a single row and reports whether it was skipped.
func reconcileRow(ctx context.Context, row Row, store Store, log *zap.Logger) (bool, error) {
	authorExists, err := store.AuthorExists(ctx, row.Author())
	if err != nil {
		return false, NewError(KindConnectivity, "check author", err)
	}

	bookExists, err := store.BookExists(ctx, row.Book())
	if err != nil {
		return false, NewError(KindConnectivity, "check book", err)
	}

	if authorExists && bookExists {
		log.Debug("Record already exists",
			zap.Int64("author_id", row.AuthorID),
			zap.String("author_pen_name", row.PenName),
			zap.Int64("book_id", row.BookID),
			zap.String("book_name", row.BookName),
		)
		return true, nil
	}

	if !authorExists {
		if err := store.InsertAuthor(ctx, row.Author()); err != nil {
			return false, NewError(KindConnectivity, "insert author", err)
		}
		log.Debug("Inserted author", zap.Int64("author_id", row.AuthorID), zap.String("author_pen_name", row.PenName))
	}

	if !bookExists {
		if err := store.InsertBook(ctx, row.Book()); err != nil {
			return false, NewError(KindConnectivity, "insert book", err)
		}
		log.Debug("Inserted book", zap.Int64("book_id", row.BookID), zap.String("book_name", row.BookName))
	}

	if err := store.InsertLibraryEntry(ctx, row.Entry()); err != nil {
		return false, NewError(KindConnectivity, "insert library entry", err)
	}
	log.Debug("Inserted into library", zap.Int64("book_id", row.BookID), zap.Int64("author_id", row.AuthorID))

	return false, nil
}
