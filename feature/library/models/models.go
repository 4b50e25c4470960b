package models

import "library-ingest/core/reconcile"

// Author is a row of the 'authors' table.
type Author struct {
	AuthorID      int64  `gorm:"column:author_id;primaryKey;autoIncrement:false"`
	AuthorPenName string `gorm:"column:author_pen_name;not null"`
}

// TableName overrides the table name.
func (Author) TableName() string {
	return "authors"
}

// Book is a row of the 'books' table.
type Book struct {
	BookID   int64  `gorm:"column:book_id;primaryKey;autoIncrement:false"`
	BookName string `gorm:"column:book_name;not null"`
}

// TableName overrides the table name.
func (Book) TableName() string {
	return "books"
}

// LibraryEntry is a row of the 'library' join table. The table has no primary
// key of its own, so repeated pairs are kept.
type LibraryEntry struct {
	BookID   int64 `gorm:"column:book_id;not null;index"`
	AuthorID int64 `gorm:"column:author_id;not null;index"`
}

// TableName overrides the table name.
func (LibraryEntry) TableName() string {
	return "library"
}

// Columns lists, per table, the columns the ingester reads or writes.
var Columns = map[string][]string{
	"authors": {"author_id", "author_pen_name"},
	"books":   {"book_id", "book_name"},
	"library": {"book_id", "author_id"},
}

// FromAuthor converts a domain author.
func FromAuthor(a reconcile.Author) Author {
	return Author{AuthorID: a.ID, AuthorPenName: a.PenName}
}

// FromBook converts a domain book.
func FromBook(b reconcile.Book) Book {
	return Book{BookID: b.ID, BookName: b.Name}
}

// FromEntry converts a domain library entry.
func FromEntry(e reconcile.LibraryEntry) LibraryEntry {
	return LibraryEntry{BookID: e.BookID, AuthorID: e.AuthorID}
}
