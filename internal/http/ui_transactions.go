package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/services"
)

// TransactionsPage renders the transactions table.
func (u *UIController) TransactionsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "transactions", u.pageData(c, "transactions", gin.H{
		"Transactions": u.library.ListTransactions(c.Request.Context()),
	}))
}

// SearchTransactions filters on book title, member name and status.
func (u *UIController) SearchTransactions(c *gin.Context) {
	views := u.library.ListTransactions(c.Request.Context())
	c.HTML(http.StatusOK, "transaction-table", partialData(c, gin.H{
		"Transactions": filterTransactions(views, c.Query("q")),
	}))
}

// transactionForm lists only the books that are Available right now.
func (u *UIController) transactionForm(c *gin.Context, input services.TransactionInput) gin.H {
	ctx := c.Request.Context()
	return gin.H{
		"Heading": "New Transaction",
		"Action":  "/ui/transactions",
		"Input":   input,
		"Books":   u.library.AvailableBooks(ctx),
		"Members": u.library.ListMembers(ctx),
	}
}

// NewTransactionForm lists only Available books.
func (u *UIController) NewTransactionForm(c *gin.Context) {
	input := services.TransactionInput{
		DueDate: u.now().AddDate(0, 0, defaultLoanDays).Format(entities.DueDateLayout),
	}
	c.HTML(http.StatusOK, "transaction-form", partialData(c, u.transactionForm(c, input)))
}

func (u *UIController) transactionsResult(c *gin.Context) func() gin.H {
	return func() gin.H {
		return gin.H{"Transactions": u.library.ListTransactions(c.Request.Context())}
	}
}

// CreateTransaction records the borrowing and then marks the book
// Borrowed.
func (u *UIController) CreateTransaction(c *gin.Context) {
	var input services.TransactionInput
	if err := c.ShouldBind(&input); err != nil {
		u.respondFormError(c, "transactions", "transaction-form", u.transactionForm(c, input), errUnreadableForm)
		return
	}

	tx, err := u.library.BorrowBook(c.Request.Context(), input)
	switch {
	case services.IsValidationError(err):
		u.respondFormError(c, "transactions", "transaction-form", u.transactionForm(c, input), err)
	case err != nil && tx != nil:
		u.respondWritten(c, "transactions", "transaction-result", u.transactionsResult(c), flashError,
			fmt.Sprintf("Transaction %d was recorded but the book could not be marked Borrowed.", tx.ID))
	case err != nil:
		u.respondWritten(c, "transactions", "transaction-result", u.transactionsResult(c), flashError, "Could not record the transaction. Please try again.")
	default:
		u.respondWritten(c, "transactions", "transaction-result", u.transactionsResult(c), flashSuccess, fmt.Sprintf("Transaction %d recorded.", tx.ID))
	}
}

// ReturnTransaction marks the transaction Returned and then the book
// named by the book_id query parameter Available.
func (u *UIController) ReturnTransaction(c *gin.Context) {
	id, ok := parseUIID(c, "transaction")
	if !ok {
		return
	}
	bookID, err := parseUint(c.Query("book_id"))
	if err != nil {
		bookID = 0
	}

	receipt, err := u.library.ReturnBook(c.Request.Context(), id, bookID)
	switch {
	case err != nil && receipt != nil:
		u.respondWritten(c, "transactions", "transaction-result", u.transactionsResult(c), flashError,
			fmt.Sprintf("Transaction %d was returned but the book could not be marked Available.", id))
	case err != nil:
		u.respondWritten(c, "transactions", "transaction-result", u.transactionsResult(c), flashError, "Could not return the book. Please try again.")
	default:
		u.respondWritten(c, "transactions", "transaction-result", u.transactionsResult(c), flashSuccess, fmt.Sprintf("Transaction %d returned.", id))
	}
}
