package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// NewAuthor holds the typed fields of an author about to be created.
type NewAuthor struct {
	Name        string
	BirthDate   time.Time
	DateOfDeath *time.Time
}

// NewBook holds the typed fields of a book about to be created.
type NewBook struct {
	Title           string
	ISBN            int64
	PublicationDate time.Time
	AuthorID        uint
}

// AddAuthor persists a new author. Names are not unique.
func (s *Service) AddAuthor(ctx context.Context, in NewAuthor) (*entities.Author, error) {
	if in.BirthDate.IsZero() {
		return nil, &ValidationError{Field: "birth_date", Reason: "is required"}
	}

	author := &entities.Author{
		Name:        in.Name,
		BirthDate:   &in.BirthDate,
		DateOfDeath: in.DateOfDeath,
	}

	err := s.inTx(ctx, func(st store) error {
		return st.authors.Create(ctx, author)
	})
	if err != nil {
		return nil, fmt.Errorf("add author: %w", err)
	}

	s.recordAdd(entities.EntryTypeAuthor, author.ID, author.Name)
	return author, nil
}

// AddBook persists a new book for an existing author. It fails with a
// ReferentialIntegrityError when in.AuthorID names no author.
func (s *Service) AddBook(ctx context.Context, in NewBook) (*entities.Book, error) {
	book := &entities.Book{
		Title:           in.Title,
		ISBN:            in.ISBN,
		PublicationYear: in.PublicationDate,
		AuthorID:        in.AuthorID,
	}

	err := s.inTx(ctx, func(st store) error {
		return st.books.Create(ctx, book)
	})
	if database.IsForeignKeyViolation(err) {
		return nil, &ReferentialIntegrityError{Entity: entities.EntryTypeAuthor, ID: in.AuthorID, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("add book: %w", err)
	}

	s.recordAdd(entities.EntryTypeBook, book.ID, book.Title)
	return book, nil
}
