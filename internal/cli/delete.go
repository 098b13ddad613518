package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/config"
)

var errIDRequired = errors.New("-id is required")

type DeleteBookCommand struct {
	DatabasePath string
	ID           uint

	Out io.Writer
}

func NewDeleteBookCommand() *DeleteBookCommand {
	return &DeleteBookCommand{Out: os.Stdout}
}

func (cmd *DeleteBookCommand) ParseFlags(args []string) error {
	fs := newFlagSet("delete-book",
		"Delete a book. Its author is deleted too when no other book references them.",
		"-id 3",
	)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.UintVar(&cmd.ID, "id", 0, "Book id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ID == 0 {
		return errIDRequired
	}
	return nil
}

func (cmd *DeleteBookCommand) Run() error {
	s, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	removal, err := s.catalog.DeleteBook(context.Background(), cmd.ID)
	if err != nil {
		return err
	}
	if !removal.Removed {
		fmt.Fprintf(cmd.Out, "No book with id %d.\n", cmd.ID)
		return nil
	}

	fmt.Fprintf(cmd.Out, "Book '%s' has been deleted successfully!\n", removal.Title)
	if removal.AuthorRemoved {
		fmt.Fprintf(cmd.Out, "Author '%s' had no other books and was removed too.\n", removal.AuthorName)
	}
	return nil
}

type DeleteAuthorCommand struct {
	DatabasePath string
	ID           uint

	Out io.Writer
}

func NewDeleteAuthorCommand() *DeleteAuthorCommand {
	return &DeleteAuthorCommand{Out: os.Stdout}
}

func (cmd *DeleteAuthorCommand) ParseFlags(args []string) error {
	fs := newFlagSet("delete-author", "Delete an author that has no books.", "-id 2")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.UintVar(&cmd.ID, "id", 0, "Author id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ID == 0 {
		return errIDRequired
	}
	return nil
}

func (cmd *DeleteAuthorCommand) Run() error {
	s, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	removal, err := s.catalog.DeleteAuthor(context.Background(), cmd.ID)
	if errors.Is(err, catalog.ErrReferentialIntegrity) {
		return fmt.Errorf("author %d still has books; delete them first", cmd.ID)
	}
	if err != nil {
		return err
	}
	if !removal.Removed {
		fmt.Fprintf(cmd.Out, "No author with id %d.\n", cmd.ID)
		return nil
	}

	fmt.Fprintf(cmd.Out, "Author '%s' has been deleted successfully!\n", removal.Name)
	return nil
}
