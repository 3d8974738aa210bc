package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/readonly"
	"github.com/mrlokans/librarydesk/internal/security"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	if cfg.StatusRecorder != nil {
		router.Use(MetricsMiddleware(cfg.StatusRecorder))
	}

	router.Use(security.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(security.StrictTransportSecurityMiddleware())
	}

	if cfg.ReadOnly {
		router.Use(readonly.NewMiddleware(true).Handler())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}

	tmpl, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	serveStatic(router, cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	books := NewBooksController(cfg.Library)
	members := NewMembersController(cfg.Library)
	transactions := NewTransactionsController(cfg.Library)
	dashboard := NewDashboardController(cfg.Library)
	ui := NewUIController(cfg.Library, cfg.SessionManager)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	// Pages
	router.GET("/", ui.Index)
	router.GET("/dashboard", ui.DashboardPage)
	router.GET("/books", ui.BooksPage)
	router.GET("/members", ui.MembersPage)
	router.GET("/transactions", ui.TransactionsPage)

	// HTMX partials
	router.GET("/ui/dashboard/stats", ui.DashboardStats)
	router.GET("/ui/modal/close", ui.CloseModal)

	router.GET("/ui/books/search", ui.SearchBooks)
	router.GET("/ui/books/new", ui.NewBookForm)
	router.GET("/ui/books/:id/edit", ui.EditBookForm)
	router.POST("/ui/books", ui.CreateBook)
	router.POST("/ui/books/:id", ui.UpdateBook)
	router.POST("/ui/books/:id/delete", ui.DeleteBook)

	router.GET("/ui/members/search", ui.SearchMembers)
	router.GET("/ui/members/new", ui.NewMemberForm)
	router.GET("/ui/members/:id/edit", ui.EditMemberForm)
	router.POST("/ui/members", ui.CreateMember)
	router.POST("/ui/members/:id", ui.UpdateMember)
	router.POST("/ui/members/:id/delete", ui.DeleteMember)

	router.GET("/ui/transactions/search", ui.SearchTransactions)
	router.GET("/ui/transactions/new", ui.NewTransactionForm)
	router.POST("/ui/transactions", ui.CreateTransaction)
	router.POST("/ui/transactions/:id/return", ui.ReturnTransaction)

	// Books API endpoints
	router.GET("/api/books", books.GetAllBooks)
	router.POST("/api/books", books.CreateBook)
	router.PUT("/api/books/:id", books.UpdateBook)
	router.PATCH("/api/books/:id/status", books.SetBookStatus)
	router.DELETE("/api/books/:id", books.DeleteBook)

	// Members API endpoints
	router.GET("/api/members", members.GetAllMembers)
	router.POST("/api/members", members.CreateMember)
	router.PUT("/api/members/:id", members.UpdateMember)
	router.DELETE("/api/members/:id", members.DeleteMember)

	// Transactions API endpoints
	router.GET("/api/transactions", transactions.GetAllTransactions)
	router.GET("/api/transactions/overdue", transactions.GetOverdue)
	router.POST("/api/transactions", transactions.CreateTransaction)
	router.POST("/api/transactions/:id/return", transactions.ReturnTransaction)
	router.POST("/api/circulation/borrow", transactions.Borrow)
	router.POST("/api/circulation/return/:id", transactions.Return)

	router.GET("/api/dashboard", dashboard.GetStats)

	if cfg.AuditService != nil {
		audit := NewAuditController(cfg.AuditService)
		router.GET("/api/audit", audit.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router, nil
}
