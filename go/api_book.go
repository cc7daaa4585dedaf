package recordserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookhttpmapper "github.com/Apurer/recordkeeper/internal/domains/books/adapters/http/mapper"
	bookstypes "github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	booksdomain "github.com/Apurer/recordkeeper/internal/domains/books/domain"
	booksports "github.com/Apurer/recordkeeper/internal/domains/books/ports"
)

// BookAPI wires HTTP transport with the books bounded context.
type BookAPI struct {
	service booksports.Service
}

// NewBookAPI creates a BookAPI backed by the provided service.
func NewBookAPI(service booksports.Service) BookAPI {
	return BookAPI{service: service}
}

// Post /v1/books
// Catalog a new book
func (api *BookAPI) AddBook(c *gin.Context) {
	var payload bookhttpmapper.CreateBook
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	book, err := api.service.AddBook(c.Request.Context(), bookhttpmapper.ToAddInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookhttpmapper.FromDomain(book))
}

// Get /v1/books
// List available books
func (api *BookAPI) ListAvailableBooks(c *gin.Context) {
	books, err := api.service.ListAvailableBooks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainList(books))
}

// Get /v1/books/search/rating
// Find available books rated within a range
func (api *BookAPI) FindBooksByRating(c *gin.Context) {
	minRating, ok := queryFloat(c, "min", booksdomain.MinRating)
	if !ok {
		return
	}
	maxRating, ok := queryFloat(c, "max", booksdomain.MaxRating)
	if !ok {
		return
	}
	books, err := api.service.ListBooksByRatingRange(c.Request.Context(), bookstypes.RatingRange{Min: minRating, Max: maxRating})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomainList(books))
}

// Get /v1/books/isbn/:isbn
// Find a book by ISBN
func (api *BookAPI) GetBookByISBN(c *gin.Context) {
	isbn := c.Param("isbn")
	book, err := api.service.GetBookByISBN(c.Request.Context(), isbn)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if book == nil {
		respondNotFound(c, "book", isbn)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomain(book))
}

// Get /v1/books/:bookId
// Find a book by ID
func (api *BookAPI) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	book, err := api.service.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if book == nil {
		respondNotFound(c, "book", id)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomain(book))
}

// Patch /v1/books/:bookId
// Update the supplied fields of a book
func (api *BookAPI) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	var payload bookhttpmapper.PatchBook
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	book, err := api.service.UpdateBook(c.Request.Context(), id, bookhttpmapper.ToMutationInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if book == nil {
		respondNotFound(c, "book", id)
		return
	}
	c.JSON(http.StatusOK, bookhttpmapper.FromDomain(book))
}

// Delete /v1/books/:bookId
// Withdraw a book from the catalog
func (api *BookAPI) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	found, err := api.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		respondNotFound(c, "book", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// Put /v1/books/:bookId/stock
// Set the on-hand quantity of a book
func (api *BookAPI) UpdateStockQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	var payload bookhttpmapper.StockUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	found, err := api.service.UpdateStockQuantity(c.Request.Context(), id, *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		respondNotFound(c, "book", id)
		return
	}
	c.Status(http.StatusNoContent)
}
