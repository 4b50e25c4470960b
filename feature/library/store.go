package library

import (
	"context"
	"fmt"

	"library-ingest/core/database"
	"library-ingest/core/reconcile"
	"library-ingest/feature/library/models"

	"gorm.io/gorm"
)

// Store implements reconcile.Store on top of gorm. It is meant to be bound to
// a transaction handle so that a run commits or rolls back as a whole.
type Store struct {
	db *gorm.DB
}

// NewStore binds a store to db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AuthorExists matches on both author_id and author_pen_name.
func (s *Store) AuthorExists(ctx context.Context, author reconcile.Author) (bool, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&models.Author{}).
		Where("author_id = ? AND author_pen_name = ?", author.ID, author.PenName).
		Limit(1).
		Pluck("author_id", &ids).Error
	if err != nil {
		return false, classify(fmt.Sprintf("check author %d", author.ID), err)
	}
	return len(ids) > 0, nil
}

// BookExists matches on both book_id and book_name.
func (s *Store) BookExists(ctx context.Context, book reconcile.Book) (bool, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("book_id = ? AND book_name = ?", book.ID, book.Name).
		Limit(1).
		Pluck("book_id", &ids).Error
	if err != nil {
		return false, classify(fmt.Sprintf("check book %d", book.ID), err)
	}
	return len(ids) > 0, nil
}

func (s *Store) InsertAuthor(ctx context.Context, author reconcile.Author) error {
	row := models.FromAuthor(author)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classify(fmt.Sprintf("insert author %d", author.ID), err)
	}
	return nil
}

func (s *Store) InsertBook(ctx context.Context, book reconcile.Book) error {
	row := models.FromBook(book)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classify(fmt.Sprintf("insert book %d", book.ID), err)
	}
	return nil
}

func (s *Store) InsertLibraryEntry(ctx context.Context, entry reconcile.LibraryEntry) error {
	row := models.FromEntry(entry)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classify(fmt.Sprintf("insert library entry (%d, %d)", entry.BookID, entry.AuthorID), err)
	}
	return nil
}

// classify maps a driver error onto the run taxonomy. Anything that is not a
// constraint violation is treated as a connectivity failure.
func classify(op string, err error) error {
	if database.IsConstraintViolation(err) {
		return reconcile.NewError(reconcile.KindConstraintViolation, op, err)
	}
	return reconcile.NewError(reconcile.KindConnectivity, op, err)
}
