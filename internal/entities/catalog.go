package entities

import "time"

// EntryType tags a catalog row so a single view can render books and authors side by side.
type EntryType string

const (
	EntryTypeBook   EntryType = "book"
	EntryTypeAuthor EntryType = "author"
)

// DateLayout is the wire format for every calendar date the catalog accepts.
const DateLayout = "2006-01-02"

type Author struct {
	ID          uint       `gorm:"column:author_id;primaryKey" json:"id"`
	Name        string     `gorm:"column:author_name;not null;index" json:"name"`
	BirthDate   *time.Time `gorm:"column:author_birth_date" json:"birth_date,omitempty"`
	DateOfDeath *time.Time `gorm:"column:author_date_of_death" json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
}

type Book struct {
	ID              uint      `gorm:"column:book_id;primaryKey" json:"id"`
	ISBN            int64     `gorm:"column:book_isbn" json:"isbn"`
	Title           string    `gorm:"column:book_title;not null;index" json:"title"`
	PublicationYear time.Time `gorm:"column:book_publication_year" json:"publication_date"`
	AuthorID        uint      `gorm:"column:author_id;not null;index" json:"author_id"`
}

func (Author) TableName() string {
	return "author"
}

func (Book) TableName() string {
	return "book"
}

// BookRow is one line of the catalog: a book joined to its author's name.
type BookRow struct {
	ID     uint      `gorm:"column:book_id" json:"id"`
	Title  string    `gorm:"column:book_title" json:"title"`
	Author string    `gorm:"column:author_name" json:"author"`
	Type   EntryType `gorm:"-" json:"type"`
}

// AuthorRow is the projection used for the unfiltered author listing.
type AuthorRow struct {
	ID   uint      `gorm:"column:author_id" json:"id"`
	Name string    `gorm:"column:author_name" json:"name"`
	Type EntryType `gorm:"-" json:"type"`
}
