package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/services"
)

// BooksController handles the books JSON API.
type BooksController struct {
	books BookService
}

func NewBooksController(books BookService) *BooksController {
	return &BooksController{books: books}
}

// GetAllBooks handles GET /api/books. A store failure yields an empty list.
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	c.JSON(http.StatusOK, bc.books.ListBooks(c.Request.Context()))
}

// CreateBook handles POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var input services.BookInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.books.AddBook(c.Request.Context(), input)
	if err != nil {
		respondWriteError(c, err, "add book")
		return
	}
	respondCreated(c, book)
}

// UpdateBook handles PUT /api/books/:id and replaces all four fields.
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.BookInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.books.UpdateBook(c.Request.Context(), id, input)
	if err != nil {
		respondWriteError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

type bookStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// SetBookStatus handles PATCH /api/books/:id/status
func (bc *BooksController) SetBookStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	status := entities.BookStatus(req.Status)
	if err := bc.books.SetBookStatus(c.Request.Context(), id, status); err != nil {
		respondWriteError(c, err, "set book status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// DeleteBook handles DELETE /api/books/:id. Unknown IDs succeed.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.books.DeleteBook(c.Request.Context(), id); err != nil {
		respondWriteError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}
