package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/services"
)

// TransactionsController handles transactions and circulation endpoints.
type TransactionsController struct {
	transactions TransactionService
	now          func() time.Time
}

// NewTransactionsController creates a new transactions controller.
func NewTransactionsController(transactions TransactionService) *TransactionsController {
	return &TransactionsController{
		transactions: transactions,
		now:          time.Now,
	}
}

// GetAllTransactions handles GET /api/transactions
func (tc *TransactionsController) GetAllTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, tc.transactions.ListTransactions(c.Request.Context()))
}

// GetOverdue handles GET /api/transactions/overdue
func (tc *TransactionsController) GetOverdue(c *gin.Context) {
	c.JSON(http.StatusOK, tc.transactions.ListOverdue(c.Request.Context(), entities.OverdueCutoff(tc.now())))
}

// CreateTransaction handles POST /api/transactions. The book is not
// touched; use /api/circulation/borrow to also mark it Borrowed.
func (tc *TransactionsController) CreateTransaction(c *gin.Context) {
	var input services.TransactionInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	tx, err := tc.transactions.AddTransaction(c.Request.Context(), input)
	if err != nil {
		respondWriteError(c, err, "add transaction")
		return
	}
	respondCreated(c, tx)
}

// ReturnTransaction handles POST /api/transactions/:id/return
func (tc *TransactionsController) ReturnTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := tc.transactions.ReturnTransaction(c.Request.Context(), id)
	if err != nil {
		respondWriteError(c, err, "return transaction")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// Borrow handles POST /api/circulation/borrow: record the transaction and
// mark the book Borrowed.
func (tc *TransactionsController) Borrow(c *gin.Context) {
	var input services.TransactionInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	tx, err := tc.transactions.BorrowBook(c.Request.Context(), input)
	if err != nil && tx != nil {
		respondPartialWrite(c, err, "borrow book", "book status not updated", tx)
		return
	}
	if err != nil {
		respondWriteError(c, err, "borrow book")
		return
	}
	respondCreated(c, tx)
}

// Return handles POST /api/circulation/return/:id: mark the transaction
// Returned and its book Available.
func (tc *TransactionsController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseOptionalQueryID(c, "book_id")
	if !ok {
		return
	}

	receipt, err := tc.transactions.ReturnBook(c.Request.Context(), id, bookID)
	if err != nil && receipt != nil {
		respondPartialWrite(c, err, "return book", "book status not updated", receipt)
		return
	}
	if err != nil {
		respondWriteError(c, err, "return book")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// respondPartialWrite reports a two-step write whose first step was
// stored and whose second failed.
func respondPartialWrite(c *gin.Context, err error, context, message string, stored any) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Code:    "partial_write",
		Details: stored,
	})
}
