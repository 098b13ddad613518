package catalog

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mrlokans/bookalchemy/internal/entities"
)

// AuthorForm carries the raw author fields as submitted by a form, JSON body or CLI.
type AuthorForm struct {
	Name        string `json:"name" form:"name"`
	BirthDate   string `json:"birth_date" form:"birthdate"`
	DateOfDeath string `json:"date_of_death" form:"date_of_death"`
}

func (f AuthorForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.BirthDate,
			validation.Required.Error("is required"),
			validation.Date(entities.DateLayout).Error("must be a YYYY-MM-DD date"),
		),
		validation.Field(&f.DateOfDeath,
			validation.Date(entities.DateLayout).Error("must be a YYYY-MM-DD date"),
		),
	)
}

// Parse converts the form into a typed NewAuthor. An empty date of death means
// the author is alive.
func (f AuthorForm) Parse() (NewAuthor, error) {
	if err := f.Validate(); err != nil {
		return NewAuthor{}, toValidationError(err)
	}

	birth, err := ParseDate("birth_date", f.BirthDate)
	if err != nil {
		return NewAuthor{}, err
	}

	author := NewAuthor{Name: f.Name, BirthDate: birth}
	if f.DateOfDeath != "" {
		death, err := ParseDate("date_of_death", f.DateOfDeath)
		if err != nil {
			return NewAuthor{}, err
		}
		author.DateOfDeath = &death
	}
	return author, nil
}

// BookForm carries the raw book fields. ISBN and AuthorID accept either JSON
// numbers or numeric strings.
type BookForm struct {
	Title           string      `json:"title" form:"title"`
	ISBN            json.Number `json:"isbn" form:"isbn"`
	PublicationDate string      `json:"publication_date" form:"publication_year"`
	AuthorID        json.Number `json:"author_id" form:"author"`
}

func (f BookForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ISBN,
			validation.Required.Error("is required"),
			is.Digit.Error("must be numeric"),
		),
		validation.Field(&f.PublicationDate,
			validation.Required.Error("is required"),
			validation.Date(entities.DateLayout).Error("must be a YYYY-MM-DD date"),
		),
		validation.Field(&f.AuthorID,
			validation.Required.Error("is required"),
			is.Digit.Error("must be numeric"),
		),
	)
}

// Parse converts the form into a typed NewBook.
func (f BookForm) Parse() (NewBook, error) {
	if err := f.Validate(); err != nil {
		return NewBook{}, toValidationError(err)
	}

	isbn, err := strconv.ParseInt(f.ISBN.String(), 10, 64)
	if err != nil {
		return NewBook{}, &ValidationError{Field: "isbn", Reason: "out of range"}
	}

	published, err := ParseDate("publication_date", f.PublicationDate)
	if err != nil {
		return NewBook{}, err
	}

	authorID, err := ParseID("author_id", f.AuthorID.String())
	if err != nil {
		return NewBook{}, err
	}

	return NewBook{
		Title:           f.Title,
		ISBN:            isbn,
		PublicationDate: published,
		AuthorID:        authorID,
	}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(entities.DateLayout, value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return d, nil
}

// ParseID parses a numeric record id.
func ParseID(field, value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a numeric id"}
	}
	return uint(id), nil
}

// toValidationError reduces ozzo's per-field error map to the first failing
// field in alphabetical order, so the reported error is deterministic.
func toValidationError(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "input", Reason: err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &ValidationError{Field: fields[0], Reason: fieldErrs[fields[0]].Error()}
}
