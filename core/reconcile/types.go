package reconcile

import "context"

// Row is a single input record after its numeric fields have been parsed.
type Row struct {
	// AuthorID is the author's primary key.
	AuthorID int64
	// PenName is the author's pen name.
	PenName string
	// BookID is the book's primary key.
	BookID int64
	// BookName is the book's title.
	BookName string
}

// Author returns the author half of the row.
func (r Row) Author() Author {
	return Author{ID: r.AuthorID, PenName: r.PenName}
}

// Book returns the book half of the row.
func (r Row) Book() Book {
	return Book{ID: r.BookID, Name: r.BookName}
}

// Entry returns the join record linking the row's book to its author.
func (r Row) Entry() LibraryEntry {
	return LibraryEntry{BookID: r.BookID, AuthorID: r.AuthorID}
}

// Author is identified by the (ID, PenName) pair.
type Author struct {
	ID      int64
	PenName string
}

// Book is identified by the (ID, Name) pair.
type Book struct {
	ID   int64
	Name string
}

// LibraryEntry links a book to an author. It has no identity of its own and
// is never checked for existence before insert.
type LibraryEntry struct {
	BookID   int64
	AuthorID int64
}

// Stats accumulates the outcome of a run.
type Stats struct {
	// Processed counts rows that completed either branch.
	Processed int `json:"records_processed"`
	// Skipped counts rows whose author and book both already existed.
	Skipped int `json:"records_skipped"`
	// Inserted counts rows that wrote at least a library entry.
	Inserted int `json:"records_inserted"`
}

// Balanced reports whether Processed == Skipped + Inserted.
func (s Stats) Balanced() bool {
	return s.Processed == s.Skipped+s.Inserted
}

// RowReader yields rows one at a time.
// Read returns io.EOF once the input is exhausted.
type RowReader interface {
	Read() (Row, error)
}

// Store is the persistent side of reconciliation.
// Existence checks match on the full natural key, not the ID alone.
type Store interface {
	// AuthorExists reports whether an author with the same ID and pen name is stored.
	AuthorExists(ctx context.Context, author Author) (bool, error)
	// BookExists reports whether a book with the same ID and name is stored.
	BookExists(ctx context.Context, book Book) (bool, error)
	// InsertAuthor stores a new author.
	InsertAuthor(ctx context.Context, author Author) error
	// InsertBook stores a new book.
	InsertBook(ctx context.Context, book Book) error
	// InsertLibraryEntry stores a join record.
	InsertLibraryEntry(ctx context.Context, entry LibraryEntry) error
}
