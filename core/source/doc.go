// Package source turns an input location into reconcile rows.
//
// A Location is either a local path or a (bucket, key) pair. The Stager
// downloads remote objects into a temporary file so the rest of the pipeline
// only ever reads local files; Staged.Close removes what the stager created.
//
// CSVReader implements reconcile.RowReader over the expected columns
// author_id, author_pen_name, book_id, book_name. The first record is always
// discarded as a header.
package source
