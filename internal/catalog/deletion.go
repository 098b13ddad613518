package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/database/repository"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// BookRemoval is the outcome of DeleteBook.
type BookRemoval struct {
	Removed bool   `json:"removed"`
	Title   string `json:"title,omitempty"`

	// AuthorRemoved is set when the deleted book was its author's last one
	// and the author was removed with it.
	AuthorRemoved bool   `json:"author_removed"`
	AuthorName    string `json:"author_name,omitempty"`
}

// AuthorRemoval is the outcome of DeleteAuthor.
type AuthorRemoval struct {
	Removed bool   `json:"removed"`
	Name    string `json:"name,omitempty"`
}

// DeleteBook removes a book and, if no other book references its author,
// the author too. Both deletes commit together or not at all.
// A missing book is a no-op reported as Removed=false.
func (s *Service) DeleteBook(ctx context.Context, id uint) (BookRemoval, error) {
	var out BookRemoval
	var authorID uint

	err := s.inTx(ctx, func(st store) error {
		book, err := st.books.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := st.books.Delete(ctx, book.ID); err != nil {
			return err
		}
		out.Removed = true
		out.Title = book.Title
		authorID = book.AuthorID

		remaining, err := st.books.Exists(ctx, repository.Query{}.Where(repository.Eq("author_id", book.AuthorID)))
		if err != nil {
			return err
		}
		if remaining {
			return nil
		}

		author, err := st.authors.Get(ctx, book.AuthorID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := st.authors.Delete(ctx, author.ID); err != nil {
			return err
		}
		out.AuthorRemoved = true
		out.AuthorName = author.Name
		return nil
	})
	if err != nil {
		return BookRemoval{}, fmt.Errorf("delete book %d: %w", id, err)
	}

	if out.Removed {
		s.recordDelete(entities.EntryTypeBook, id, out.Title, false)
	}
	if out.AuthorRemoved {
		s.recordDelete(entities.EntryTypeAuthor, authorID, out.AuthorName, true)
	}
	return out, nil
}

// DeleteAuthor removes a single author without touching books. Deleting an
// author that still has books is rejected by the foreign key and reported as a
// ReferentialIntegrityError. A missing author is a no-op reported as
// Removed=false.
func (s *Service) DeleteAuthor(ctx context.Context, id uint) (AuthorRemoval, error) {
	var out AuthorRemoval

	err := s.inTx(ctx, func(st store) error {
		author, err := st.authors.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := st.authors.Delete(ctx, author.ID); err != nil {
			return err
		}
		out = AuthorRemoval{Removed: true, Name: author.Name}
		return nil
	})
	if database.IsForeignKeyViolation(err) {
		return AuthorRemoval{}, &ReferentialIntegrityError{Entity: entities.EntryTypeAuthor, ID: id, Err: err}
	}
	if err != nil {
		return AuthorRemoval{}, fmt.Errorf("delete author %d: %w", id, err)
	}

	if out.Removed {
		s.recordDelete(entities.EntryTypeAuthor, id, out.Name, false)
	}
	return out, nil
}
