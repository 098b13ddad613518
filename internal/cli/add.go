package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/config"
)

type AddAuthorCommand struct {
	DatabasePath string
	Form         catalog.AuthorForm

	Out io.Writer
}

func NewAddAuthorCommand() *AddAuthorCommand {
	return &AddAuthorCommand{Out: os.Stdout}
}

func (cmd *AddAuthorCommand) ParseFlags(args []string) error {
	fs := newFlagSet("add-author", "Add an author to the catalog.",
		`-name "Frank Herbert" -birthdate 1920-10-08 -died 1986-02-11`,
	)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.StringVar(&cmd.Form.Name, "name", "", "Author name")
	fs.StringVar(&cmd.Form.BirthDate, "birthdate", "", "Birth date, YYYY-MM-DD (required)")
	fs.StringVar(&cmd.Form.DateOfDeath, "died", "", "Date of death, YYYY-MM-DD (omit if alive)")
	return fs.Parse(args)
}

func (cmd *AddAuthorCommand) Run() error {
	in, err := cmd.Form.Parse()
	if err != nil {
		return err
	}

	s, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	author, err := s.catalog.AddAuthor(context.Background(), in)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Author '%s' has been added successfully! (id %d)\n", author.Name, author.ID)
	return nil
}

type AddBookCommand struct {
	DatabasePath string
	Title        string
	ISBN         string
	Published    string
	AuthorID     string

	Out io.Writer
}

func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{Out: os.Stdout}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := newFlagSet("add-book", "Add a book by an existing author.",
		"-title Dune -isbn 9780441013593 -published 1965-08-01 -author 1",
	)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.StringVar(&cmd.Title, "title", "", "Book title")
	fs.StringVar(&cmd.ISBN, "isbn", "", "Numeric ISBN (required)")
	fs.StringVar(&cmd.Published, "published", "", "Publication date, YYYY-MM-DD (required)")
	fs.StringVar(&cmd.AuthorID, "author", "", "Author id (required)")
	return fs.Parse(args)
}

func (cmd *AddBookCommand) Run() error {
	form := catalog.BookForm{
		Title:           cmd.Title,
		ISBN:            json.Number(cmd.ISBN),
		PublicationDate: cmd.Published,
		AuthorID:        json.Number(cmd.AuthorID),
	}
	in, err := form.Parse()
	if err != nil {
		return err
	}

	s, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	book, err := s.catalog.AddBook(context.Background(), in)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Book '%s' has been added successfully! (id %d)\n", book.Title, book.ID)
	return nil
}
