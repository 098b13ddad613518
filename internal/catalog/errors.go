package catalog

import (
	"errors"
	"fmt"

	"github.com/mrlokans/bookalchemy/internal/database/repository"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrReferentialIntegrity matches every ReferentialIntegrityError.
	ErrReferentialIntegrity = errors.New("referential integrity violation")

	// ErrNotFound is returned by lookups for ids that do not exist.
	ErrNotFound = repository.ErrNotFound
)

// ValidationError reports a primitive input that could not be converted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ReferentialIntegrityError reports a write rejected by the author foreign key:
// a book naming a missing author, or an author that still has books.
type ReferentialIntegrityError struct {
	Entity entities.EntryType
	ID     uint
	Err    error
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Entity, e.ID, ErrReferentialIntegrity)
}

func (e *ReferentialIntegrityError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrReferentialIntegrity}
	}
	return []error{ErrReferentialIntegrity, e.Err}
}
