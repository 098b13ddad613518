package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookalchemy/internal/catalog"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

// run parses args into cmd, points its output at a buffer and runs it.
func run(t *testing.T, cmd command, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	switch c := cmd.(type) {
	case *ListCommand:
		c.Out = out
	case *AddAuthorCommand:
		c.Out = out
	case *AddBookCommand:
		c.Out = out
	case *DeleteBookCommand:
		c.Out = out
	case *DeleteAuthorCommand:
		c.Out = out
	}
	require.NoError(t, cmd.ParseFlags(args))
	out.Reset()
	err := cmd.Run()
	return out.String(), err
}

func TestCatalogCommands_EndToEnd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite")
	var out bytes.Buffer

	text, err := run(t, NewAddAuthorCommand(), &out,
		"-db", dbPath, "-name", "Frank Herbert", "-birthdate", "1920-10-08", "-died", "1986-02-11")
	require.NoError(t, err)
	assert.Contains(t, text, "Author 'Frank Herbert' has been added successfully! (id 1)")

	text, err = run(t, NewAddBookCommand(), &out,
		"-db", dbPath, "-title", "Dune", "-isbn", "9780441013593", "-published", "1965-08-01", "-author", "1")
	require.NoError(t, err)
	assert.Contains(t, text, "Book 'Dune' has been added successfully! (id 1)")

	text, err = run(t, NewListCommand(), &out, "-db", dbPath, "-search", "dune")
	require.NoError(t, err)
	assert.Contains(t, text, "=== Books (1) ===")
	assert.Contains(t, text, `"Dune" by Frank Herbert`)
	assert.Contains(t, text, "=== Authors (1) ===")

	_, err = run(t, NewDeleteAuthorCommand(), &out, "-db", dbPath, "-id", "1")
	assert.ErrorContains(t, err, "still has books")

	text, err = run(t, NewDeleteBookCommand(), &out, "-db", dbPath, "-id", "1")
	require.NoError(t, err)
	assert.Contains(t, text, "Book 'Dune' has been deleted successfully!")
	assert.Contains(t, text, "Author 'Frank Herbert' had no other books and was removed too.")

	text, err = run(t, NewListCommand(), &out, "-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, text, "No books found.")
	assert.Contains(t, text, "=== Authors (0) ===")
}

func TestAddAuthorCommand_InvalidDate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite")
	var out bytes.Buffer

	_, err := run(t, NewAddAuthorCommand(), &out, "-db", dbPath, "-name", "X", "-birthdate", "yesterday")

	assert.ErrorIs(t, err, catalog.ErrValidation)
}

func TestAddBookCommand_UnknownAuthor(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite")
	var out bytes.Buffer

	_, err := run(t, NewAddBookCommand(), &out,
		"-db", dbPath, "-title", "Ghost", "-isbn", "1", "-published", "2000-01-01", "-author", "7")

	assert.ErrorIs(t, err, catalog.ErrReferentialIntegrity)
}

func TestDeleteCommands_Missing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite")
	var out bytes.Buffer

	text, err := run(t, NewDeleteBookCommand(), &out, "-db", dbPath, "-id", "5")
	require.NoError(t, err)
	assert.Equal(t, "No book with id 5.\n", text)

	text, err = run(t, NewDeleteAuthorCommand(), &out, "-db", dbPath, "-id", "5")
	require.NoError(t, err)
	assert.Equal(t, "No author with id 5.\n", text)
}

func TestDeleteCommands_RequireID(t *testing.T) {
	assert.ErrorIs(t, NewDeleteBookCommand().ParseFlags(nil), errIDRequired)
	assert.ErrorIs(t, NewDeleteAuthorCommand().ParseFlags(nil), errIDRequired)
}

func TestListCommand_Defaults(t *testing.T) {
	cmd := NewListCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, "title", cmd.Sort)
	assert.Empty(t, cmd.Search)
}
