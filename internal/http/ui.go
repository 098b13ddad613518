package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/session"
)

// UIController serves the HTML catalog pages and form submissions.
type UIController struct {
	catalog  CatalogService
	sessions *session.Manager
}

func NewUIController(catalog CatalogService, sessions *session.Manager) *UIController {
	return &UIController{catalog: catalog, sessions: sessions}
}

// HomePage renders the catalog.
// GET /?sort=title|author&search=term
func (ui *UIController) HomePage(c *gin.Context) {
	sortBy := catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortByTitle)))
	search := c.Query("search")

	listing, err := ui.catalog.ListCatalog(c.Request.Context(), sortBy, search)
	if err != nil {
		ui.renderError(c, err, "list catalog")
		return
	}

	data := ui.pageData(c, gin.H{
		"Books":   listing.Books,
		"Authors": listing.Authors,
		"Sort":    string(sortBy),
		"Search":  search,
	})
	c.HTML(http.StatusOK, "home", data)
}

// AddAuthorForm renders the empty author form.
// GET /add_author
func (ui *UIController) AddAuthorForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_author", ui.pageData(c, gin.H{}))
}

// AddAuthor creates an author from the submitted form and re-renders it.
// POST /add_author
func (ui *UIController) AddAuthor(c *gin.Context) {
	var form catalog.AuthorForm
	if err := c.ShouldBind(&form); err != nil {
		ui.renderForm(c, http.StatusBadRequest, "add_author", gin.H{"Error": "Invalid form submission"})
		return
	}

	in, err := form.Parse()
	if err != nil {
		ui.renderForm(c, http.StatusBadRequest, "add_author", gin.H{"Error": err.Error(), "Form": form})
		return
	}

	author, err := ui.catalog.AddAuthor(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			ui.renderForm(c, http.StatusBadRequest, "add_author", gin.H{"Error": err.Error(), "Form": form})
			return
		}
		ui.renderError(c, err, "add author")
		return
	}

	ui.renderForm(c, http.StatusOK, "add_author", gin.H{
		"Success": fmt.Sprintf("Author '%s' has been added successfully!", author.Name),
	})
}

// AddBookForm renders the book form with every author to pick from.
// GET /add_book
func (ui *UIController) AddBookForm(c *gin.Context) {
	ui.renderBookForm(c, http.StatusOK, gin.H{})
}

// AddBook creates a book from the submitted form and re-renders it.
// POST /add_book
func (ui *UIController) AddBook(c *gin.Context) {
	var form catalog.BookForm
	if err := c.ShouldBind(&form); err != nil {
		ui.renderBookForm(c, http.StatusBadRequest, gin.H{"Error": "Invalid form submission"})
		return
	}

	in, err := form.Parse()
	if err != nil {
		ui.renderBookForm(c, http.StatusBadRequest, gin.H{"Error": err.Error(), "Form": form})
		return
	}

	book, err := ui.catalog.AddBook(c.Request.Context(), in)
	if errors.Is(err, catalog.ErrReferentialIntegrity) {
		ui.renderBookForm(c, http.StatusConflict, gin.H{
			"Error": fmt.Sprintf("Author %d does not exist", in.AuthorID),
			"Form":  form,
		})
		return
	}
	if err != nil {
		ui.renderError(c, err, "add book")
		return
	}

	ui.renderBookForm(c, http.StatusOK, gin.H{
		"Success": fmt.Sprintf("Book '%s' has been added successfully!", book.Title),
	})
}

// DeleteBook removes a book (and its author, if orphaned) and returns home.
// POST /book/:id/delete
func (ui *UIController) DeleteBook(c *gin.Context) {
	id, err := catalog.ParseID("id", c.Param("id"))
	if err != nil {
		ui.redirectHome(c, "", "Invalid book id")
		return
	}

	removal, err := ui.catalog.DeleteBook(c.Request.Context(), id)
	if err != nil {
		log.Printf("Internal error (delete book): %v", err)
		ui.redirectHome(c, "", "The book could not be deleted")
		return
	}
	if !removal.Removed {
		ui.redirectHome(c, "", "")
		return
	}

	msg := fmt.Sprintf("Book '%s' has been deleted successfully!", removal.Title)
	if removal.AuthorRemoved {
		msg += fmt.Sprintf(" Author '%s' had no other books and was removed too.", removal.AuthorName)
	}
	ui.redirectHome(c, msg, "")
}

// DeleteAuthor removes an author that has no books and returns home.
// POST /author/:id/delete
func (ui *UIController) DeleteAuthor(c *gin.Context) {
	id, err := catalog.ParseID("id", c.Param("id"))
	if err != nil {
		ui.redirectHome(c, "", "Invalid author id")
		return
	}

	removal, err := ui.catalog.DeleteAuthor(c.Request.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrReferentialIntegrity):
		ui.redirectHome(c, "", "This author still has books. Delete the books first.")
	case err != nil:
		log.Printf("Internal error (delete author): %v", err)
		ui.redirectHome(c, "", "The author could not be deleted")
	case removal.Removed:
		ui.redirectHome(c, fmt.Sprintf("Author '%s' has been deleted successfully!", removal.Name), "")
	default:
		ui.redirectHome(c, "", "")
	}
}

func (ui *UIController) renderBookForm(c *gin.Context, status int, data gin.H) {
	authors, err := ui.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		ui.renderError(c, err, "list authors")
		return
	}
	data["Authors"] = authors
	ui.renderForm(c, status, "add_book", data)
}

func (ui *UIController) renderForm(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, ui.pageData(c, data))
}

func (ui *UIController) renderError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.HTML(http.StatusInternalServerError, "error", gin.H{"Error": "Something went wrong. Please try again."})
}

// pageData adds the CSRF token and any pending flash messages to data.
func (ui *UIController) pageData(c *gin.Context, data gin.H) gin.H {
	data["CSRFField"] = session.CSRFFieldName
	data["CSRFToken"] = session.CSRFToken(c)

	if ui.sessions != nil {
		success, failure := ui.sessions.Flashes(c.Request.Context())
		if _, set := data["Success"]; !set && success != "" {
			data["Success"] = success
		}
		if _, set := data["Error"]; !set && failure != "" {
			data["Error"] = failure
		}
	}
	return data
}

func (ui *UIController) redirectHome(c *gin.Context, success, failure string) {
	if ui.sessions != nil {
		if success != "" {
			ui.sessions.FlashSuccess(c.Request.Context(), success)
		}
		if failure != "" {
			ui.sessions.FlashError(c.Request.Context(), failure)
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}
