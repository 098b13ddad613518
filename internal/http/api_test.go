package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookalchemy/internal/catalog"
)

func (e *testEnv) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestCatalogAPI_CreateAndList(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.sendJSON(http.MethodPost, "/api/authors",
		`{"name":"Frank Herbert","birth_date":"1920-10-08","date_of_death":"1986-02-11"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var author struct {
		ID          uint    `json:"id"`
		Name        string  `json:"name"`
		DateOfDeath *string `json:"date_of_death"`
	}
	decodeJSON(t, w, &author)
	assert.Equal(t, "Frank Herbert", author.Name)
	assert.NotNil(t, author.DateOfDeath)

	w = env.sendJSON(http.MethodPost, "/api/books",
		`{"title":"Dune","isbn":9780441013593,"publication_date":"1965-08-01","author_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var book struct {
		ID       uint   `json:"id"`
		Title    string `json:"title"`
		ISBN     int64  `json:"isbn"`
		AuthorID uint   `json:"author_id"`
	}
	decodeJSON(t, w, &book)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, int64(9780441013593), book.ISBN)
	assert.Equal(t, author.ID, book.AuthorID)

	w = env.get("/api/catalog?search=HERBERT")
	require.Equal(t, http.StatusOK, w.Code)

	var listing catalog.Listing
	decodeJSON(t, w, &listing)
	require.Len(t, listing.Books, 1)
	assert.Equal(t, "Dune", listing.Books[0].Title)
	assert.Equal(t, "Frank Herbert", listing.Books[0].Author)
	assert.EqualValues(t, "book", listing.Books[0].Type)
	require.Len(t, listing.Authors, 1)

	w = env.get("/api/authors")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestCatalogAPI_StringNumbersAccepted(t *testing.T) {
	env := setupTestRouter(t, nil)
	env.seedAuthor(t, "Frank Herbert")

	w := env.sendJSON(http.MethodPost, "/api/books",
		`{"title":"Dune","isbn":"9780441013593","publication_date":"1965-08-01","author_id":"1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCatalogAPI_Errors(t *testing.T) {
	env := setupTestRouter(t, nil)
	herbert := env.seedAuthor(t, "Frank Herbert")
	env.seedBook(t, "Dune", herbert.ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", http.MethodPost, "/api/authors", `{`, http.StatusBadRequest, ""},
		{"missing birth date", http.MethodPost, "/api/authors", `{"name":"X"}`, http.StatusBadRequest, "validation_error"},
		{"bad publication date", http.MethodPost, "/api/books", `{"title":"X","isbn":1,"publication_date":"1965","author_id":1}`, http.StatusBadRequest, "validation_error"},
		{"unknown author", http.MethodPost, "/api/books", `{"title":"X","isbn":1,"publication_date":"1965-01-01","author_id":42}`, http.StatusConflict, "referential_integrity"},
		{"author with books", http.MethodDelete, "/api/authors/1", ``, http.StatusConflict, "referential_integrity"},
		{"missing author", http.MethodGet, "/api/authors/42", ``, http.StatusNotFound, ""},
		{"missing book", http.MethodGet, "/api/books/42", ``, http.StatusNotFound, ""},
		{"non-numeric id", http.MethodGet, "/api/books/abc", ``, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.sendJSON(tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			decodeJSON(t, w, &resp)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestCatalogAPI_DeleteBookCascades(t *testing.T) {
	env := setupTestRouter(t, nil)
	herbert := env.seedAuthor(t, "Frank Herbert")
	book := env.seedBook(t, "Dune", herbert.ID)

	w := env.sendJSON(http.MethodDelete, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var removal catalog.BookRemoval
	decodeJSON(t, w, &removal)
	assert.Equal(t, catalog.BookRemoval{
		Removed:       true,
		Title:         book.Title,
		AuthorRemoved: true,
		AuthorName:    herbert.Name,
	}, removal)

	w = env.get("/api/authors/1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.sendJSON(http.MethodDelete, "/api/books/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"removed":false,"author_removed":false}`, w.Body.String())
}

func TestCatalogAPI_DeleteAuthor(t *testing.T) {
	env := setupTestRouter(t, nil)
	env.seedAuthor(t, "Jane Doe")

	w := env.sendJSON(http.MethodDelete, "/api/authors/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":true,"name":"Jane Doe"}`, w.Body.String())

	w = env.sendJSON(http.MethodDelete, "/api/authors/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
