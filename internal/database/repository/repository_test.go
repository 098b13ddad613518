package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func date(s string) time.Time {
	d, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := New[entities.Author](db)

	birth := date("1920-10-08")
	author := &entities.Author{Name: "Frank Herbert", BirthDate: &birth}
	require.NoError(t, authors.Create(ctx, author))
	assert.NotZero(t, author.ID)

	found, err := authors.Get(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", found.Name)
	require.NotNil(t, found.BirthDate)
	assert.True(t, birth.Equal(*found.BirthDate))
	assert.Nil(t, found.DateOfDeath)
}

func TestRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	authors := New[entities.Author](db)

	found, err := authors.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, found)
}

func TestRepository_IDsIncrease(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := New[entities.Author](db)

	first := &entities.Author{Name: "A"}
	second := &entities.Author{Name: "A"}
	require.NoError(t, authors.Create(ctx, first))
	require.NoError(t, authors.Create(ctx, second))

	assert.Greater(t, second.ID, first.ID)

	all, err := authors.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := New[entities.Author](db)

	author := &entities.Author{Name: "Jane Doe"}
	require.NoError(t, authors.Create(ctx, author))

	removed, err := authors.Delete(ctx, author.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = authors.Delete(ctx, author.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_ForeignKeyEnforced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	books := New[entities.Book](db)
	authors := New[entities.Author](db)

	err := books.Create(ctx, &entities.Book{Title: "Orphan", AuthorID: 999})
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))

	author := &entities.Author{Name: "Frank Herbert"}
	require.NoError(t, authors.Create(ctx, author))
	require.NoError(t, books.Create(ctx, &entities.Book{Title: "Dune", AuthorID: author.ID}))

	_, err = authors.Delete(ctx, author.ID)
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestRepository_ExistsAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	books := New[entities.Book](db)
	authors := New[entities.Author](db)

	author := &entities.Author{Name: "Ursula K. Le Guin"}
	require.NoError(t, authors.Create(ctx, author))
	require.NoError(t, books.Create(ctx, &entities.Book{Title: "The Dispossessed", AuthorID: author.ID}))
	require.NoError(t, books.Create(ctx, &entities.Book{Title: "A Wizard of Earthsea", AuthorID: author.ID}))

	exists, err := books.Exists(ctx, Query{}.Where(Eq("author_id", author.ID)))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = books.Exists(ctx, Query{}.Where(Eq("author_id", author.ID+1)))
	require.NoError(t, err)
	assert.False(t, exists)

	list, err := books.List(ctx, Query{}.OrderBy(Asc("book_title")))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A Wizard of Earthsea", list[0].Title)

	list, err = books.List(ctx, Query{}.OrderBy(Desc("book_title")))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "The Dispossessed", list[0].Title)
}

func TestContainsFold(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := New[entities.Author](db)

	for _, name := range []string{"Émile Zola", "GRASS", "100% Human", "snake_case", "Plain"} {
		require.NoError(t, authors.Create(ctx, &entities.Author{Name: name}))
	}

	search := func(term string) []string {
		list, err := authors.List(ctx, Query{}.Where(ContainsFold(term, "author_name")))
		require.NoError(t, err)
		names := make([]string, 0, len(list))
		for _, a := range list {
			names = append(names, a.Name)
		}
		return names
	}

	assert.ElementsMatch(t, []string{"Émile Zola"}, search("émile"))
	assert.ElementsMatch(t, []string{"Émile Zola"}, search("ÉMILE"))
	assert.ElementsMatch(t, []string{"GRASS"}, search("grass"))
	assert.ElementsMatch(t, []string{"100% Human"}, search("%"))
	assert.ElementsMatch(t, []string{"snake_case"}, search("_"))
	assert.Len(t, search(""), 5)
	assert.Empty(t, search("nothing"))
}

func TestQuery_BuildersDoNotAlias(t *testing.T) {
	base := Query{}.Where(Eq("a", 1))
	left := base.Where(Eq("b", 2))
	right := base.Where(Eq("c", 3))

	assert.Len(t, base.Predicates, 1)
	require.Len(t, left.Predicates, 2)
	require.Len(t, right.Predicates, 2)
	assert.Equal(t, "b = ?", left.Predicates[1].SQL)
	assert.Equal(t, "c = ?", right.Predicates[1].SQL)
}

func TestContainsFold_EmptyTerm(t *testing.T) {
	assert.Equal(t, Predicate{}, ContainsFold("", "author_name"))
	assert.Empty(t, Query{}.Where(ContainsFold("")).Predicates)
}
