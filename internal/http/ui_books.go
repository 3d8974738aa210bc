package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/services"
)

var (
	errUnreadableForm = errors.New("the form could not be read")
	bookStatuses      = []entities.BookStatus{entities.BookStatusAvailable, entities.BookStatusBorrowed}
)

// BooksPage renders the books table.
func (u *UIController) BooksPage(c *gin.Context) {
	c.HTML(http.StatusOK, "books", u.pageData(c, "books", gin.H{
		"Books": u.library.ListBooks(c.Request.Context()),
	}))
}

// SearchBooks re-fetches every book and keeps those whose title, author
// or category contains q.
func (u *UIController) SearchBooks(c *gin.Context) {
	books := u.library.ListBooks(c.Request.Context())
	c.HTML(http.StatusOK, "book-table", partialData(c, gin.H{
		"Books": filterBooks(books, c.Query("q")),
	}))
}

// NewBookForm renders an empty book form into the modal.
func (u *UIController) NewBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, "book-form", partialData(c, gin.H{
		"Heading":  "Add Book",
		"Action":   "/ui/books",
		"Book":     services.BookInput{Status: string(entities.BookStatusAvailable)},
		"Statuses": bookStatuses,
	}))
}

// EditBookForm renders the book form filled from the store.
func (u *UIController) EditBookForm(c *gin.Context) {
	id, ok := parseUIID(c, "book")
	if !ok {
		return
	}

	book, found := u.library.FindBook(c.Request.Context(), id)
	if !found {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	c.HTML(http.StatusOK, "book-form", partialData(c, gin.H{
		"Heading":  "Edit Book",
		"Action":   fmt.Sprintf("/ui/books/%d", id),
		"Book":     book,
		"Statuses": bookStatuses,
	}))
}

func (u *UIController) booksResult(c *gin.Context) func() gin.H {
	return func() gin.H {
		return gin.H{"Books": u.library.ListBooks(c.Request.Context())}
	}
}

// CreateBook adds a book from the form.
func (u *UIController) CreateBook(c *gin.Context) {
	form := gin.H{"Heading": "Add Book", "Action": "/ui/books", "Statuses": bookStatuses}

	var input services.BookInput
	if err := c.ShouldBind(&input); err != nil {
		form["Book"] = input
		u.respondFormError(c, "books", "book-form", form, errUnreadableForm)
		return
	}

	book, err := u.library.AddBook(c.Request.Context(), input)
	if services.IsValidationError(err) {
		form["Book"] = input
		u.respondFormError(c, "books", "book-form", form, err)
		return
	}
	if err != nil {
		u.respondWritten(c, "books", "book-result", u.booksResult(c), flashError, "Could not add the book. Please try again.")
		return
	}

	u.respondWritten(c, "books", "book-result", u.booksResult(c), flashSuccess, fmt.Sprintf("Added %q.", book.Title))
}

func (u *UIController) UpdateBook(c *gin.Context) {
	id, ok := parseUIID(c, "book")
	if !ok {
		return
	}
	form := gin.H{"Heading": "Edit Book", "Action": fmt.Sprintf("/ui/books/%d", id), "Statuses": bookStatuses}

	var input services.BookInput
	if err := c.ShouldBind(&input); err != nil {
		form["Book"] = input
		u.respondFormError(c, "books", "book-form", form, errUnreadableForm)
		return
	}

	book, err := u.library.UpdateBook(c.Request.Context(), id, input)
	if services.IsValidationError(err) {
		form["Book"] = input
		u.respondFormError(c, "books", "book-form", form, err)
		return
	}
	if err != nil {
		u.respondWritten(c, "books", "book-result", u.booksResult(c), flashError, "Could not update the book. Please try again.")
		return
	}

	u.respondWritten(c, "books", "book-result", u.booksResult(c), flashSuccess, fmt.Sprintf("Updated %q.", book.Title))
}

// DeleteBook removes a book and re-renders the table.
func (u *UIController) DeleteBook(c *gin.Context) {
	id, ok := parseUIID(c, "book")
	if !ok {
		return
	}

	if err := u.library.DeleteBook(c.Request.Context(), id); err != nil {
		u.respondWritten(c, "books", "book-result", u.booksResult(c), flashError, "Could not delete the book. Please try again.")
		return
	}

	u.respondWritten(c, "books", "book-result", u.booksResult(c), flashSuccess, "Book deleted.")
}
