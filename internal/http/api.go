package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/catalog"
)

// CatalogAPIController exposes the catalog as JSON.
type CatalogAPIController struct {
	catalog CatalogService
}

func NewCatalogAPIController(catalog CatalogService) *CatalogAPIController {
	return &CatalogAPIController{catalog: catalog}
}

// GetCatalog handles GET /api/catalog?sort=&search=
func (ac *CatalogAPIController) GetCatalog(c *gin.Context) {
	sortBy := catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortByTitle)))

	listing, err := ac.catalog.ListCatalog(c.Request.Context(), sortBy, c.Query("search"))
	if err != nil {
		respondInternalError(c, err, "list catalog")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ListAuthors handles GET /api/authors
func (ac *CatalogAPIController) ListAuthors(c *gin.Context) {
	authors, err := ac.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}

// GetAuthor handles GET /api/authors/:id
func (ac *CatalogAPIController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// GetBook handles GET /api/books/:id
func (ac *CatalogAPIController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ac.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateAuthor handles POST /api/authors
func (ac *CatalogAPIController) CreateAuthor(c *gin.Context) {
	var form catalog.AuthorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	in, err := form.Parse()
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}

	author, err := ac.catalog.AddAuthor(c.Request.Context(), in)
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	c.JSON(http.StatusCreated, author)
}

// CreateBook handles POST /api/books
func (ac *CatalogAPIController) CreateBook(c *gin.Context) {
	var form catalog.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	in, err := form.Parse()
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}

	book, err := ac.catalog.AddBook(c.Request.Context(), in)
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	c.JSON(http.StatusCreated, book)
}

// DeleteBook handles DELETE /api/books/:id. A missing book answers 404 with
// removed=false.
func (ac *CatalogAPIController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removal, err := ac.catalog.DeleteBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	if !removal.Removed {
		c.JSON(http.StatusNotFound, removal)
		return
	}
	c.JSON(http.StatusOK, removal)
}

// DeleteAuthor handles DELETE /api/authors/:id. An author that still has
// books answers 409.
func (ac *CatalogAPIController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removal, err := ac.catalog.DeleteAuthor(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	if !removal.Removed {
		c.JSON(http.StatusNotFound, removal)
		return
	}
	c.JSON(http.StatusOK, removal)
}
