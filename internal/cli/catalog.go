// Package cli implements the catalog subcommands that work directly on the
// database file, without the HTTP server.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/bookalchemy/internal/audit"
	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/config"
	"github.com/mrlokans/bookalchemy/internal/database"
	auditrepo "github.com/mrlokans/bookalchemy/internal/database/audit"
)

// store is an open catalog plus the resources that must be released after
// the command finishes.
type store struct {
	catalog *catalog.Service
	db      *database.Database
	audit   *audit.Service
}

func openCatalog(dbPath string) (*store, error) {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	auditService := audit.NewService(auditrepo.NewRepository(db.DB), nil)
	return &store{
		catalog: catalog.NewService(db.DB, auditService),
		db:      db,
		audit:   auditService,
	}, nil
}

// Close flushes pending audit events and closes the database.
func (s *store) Close() {
	s.audit.Wait()
	if err := s.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func newFlagSet(name, usage string, examples ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s %s [options]\n\n", os.Args[0], name)
		fmt.Fprintf(fs.Output(), "%s\n\n", usage)
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		if len(examples) > 0 {
			fmt.Fprintf(fs.Output(), "\nExamples:\n")
			for _, ex := range examples {
				fmt.Fprintf(fs.Output(), "  %s %s %s\n", os.Args[0], name, ex)
			}
		}
	}
	return fs
}

type ListCommand struct {
	DatabasePath string
	Sort         string
	Search       string

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{Out: os.Stdout}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := newFlagSet("list", "List books (optionally filtered) and every author.",
		"-sort author",
		"-search dune",
	)
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database")
	fs.StringVar(&cmd.Sort, "sort", string(catalog.SortByTitle), "Sort books by 'title' or 'author'")
	fs.StringVar(&cmd.Search, "search", "", "Only list books whose title or author contains this text")
	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	s, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	listing, err := s.catalog.ListCatalog(context.Background(), catalog.SortKey(cmd.Sort), cmd.Search)
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	fmt.Fprintf(cmd.Out, "=== Books (%d) ===\n", len(listing.Books))
	if len(listing.Books) == 0 {
		fmt.Fprintln(cmd.Out, "No books found.")
	}
	for _, book := range listing.Books {
		fmt.Fprintf(cmd.Out, "%4d  %q by %s\n", book.ID, book.Title, book.Author)
	}

	fmt.Fprintf(cmd.Out, "\n=== Authors (%d) ===\n", len(listing.Authors))
	for _, author := range listing.Authors {
		fmt.Fprintf(cmd.Out, "%4d  %s\n", author.ID, author.Name)
	}
	return nil
}
