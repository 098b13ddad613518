package catalog

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookalchemy/internal/database/repository"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// SortKey selects the catalog ordering. Values other than SortByTitle and
// SortByAuthor leave the rows in storage order.
type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByAuthor SortKey = "author"
)

// Listing is one catalog read. Books honour the search term and sort key;
// Authors is always every author in the system.
type Listing struct {
	Books   []entities.BookRow   `json:"books"`
	Authors []entities.AuthorRow `json:"authors"`
}

// ListCatalog joins books to their authors, keeps the rows whose title or
// author name contains searchTerm (case-insensitively, when it is not empty)
// and orders them by sortBy.
func (s *Service) ListCatalog(ctx context.Context, sortBy SortKey, searchTerm string) (Listing, error) {
	listing := Listing{
		Books:   make([]entities.BookRow, 0),
		Authors: make([]entities.AuthorRow, 0),
	}

	err := s.inTx(ctx, func(st store) error {
		if err := st.books.Scan(ctx, catalogQuery(sortBy, searchTerm), &listing.Books); err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		if err := st.authors.Scan(ctx, authorListQuery(), &listing.Authors); err != nil {
			return fmt.Errorf("list authors: %w", err)
		}
		return nil
	})
	if err != nil {
		return Listing{}, err
	}

	for i := range listing.Books {
		listing.Books[i].Type = entities.EntryTypeBook
	}
	for i := range listing.Authors {
		listing.Authors[i].Type = entities.EntryTypeAuthor
	}
	return listing, nil
}

func catalogQuery(sortBy SortKey, searchTerm string) repository.Query {
	q := repository.Query{}.
		Select("book.book_id", "book.book_title", "author.author_name").
		Join("JOIN author ON author.author_id = book.author_id").
		Where(repository.ContainsFold(searchTerm, "book.book_title", "author.author_name"))

	switch sortBy {
	case SortByTitle:
		q = q.OrderBy(repository.Asc("book.book_title"))
	case SortByAuthor:
		q = q.OrderBy(repository.Asc("author.author_name"))
	}
	return q
}

func authorListQuery() repository.Query {
	return repository.Query{}.Select("author.author_id", "author.author_name")
}

// ListAuthors returns every author record, used to populate author pickers.
func (s *Service) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := s.inTx(ctx, func(st store) error {
		var err error
		authors, err = st.authors.All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// GetAuthor returns the author with the given id or ErrNotFound.
func (s *Service) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	var author *entities.Author
	err := s.inTx(ctx, func(st store) error {
		var err error
		author, err = st.authors.Get(ctx, id)
		return err
	})
	return author, err
}

// GetBook returns the book with the given id or ErrNotFound.
func (s *Service) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book *entities.Book
	err := s.inTx(ctx, func(st store) error {
		var err error
		book, err = st.books.Get(ctx, id)
		return err
	})
	return book, err
}
