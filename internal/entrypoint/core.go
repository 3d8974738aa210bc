package entrypoint

import (
	"context"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mrlokans/librarydesk/internal/audit"
	"github.com/mrlokans/librarydesk/internal/config"
	"github.com/mrlokans/librarydesk/internal/database"
	auditrepo "github.com/mrlokans/librarydesk/internal/database/audit"
	"github.com/mrlokans/librarydesk/internal/database/books"
	"github.com/mrlokans/librarydesk/internal/database/members"
	"github.com/mrlokans/librarydesk/internal/database/transactions"
	"github.com/mrlokans/librarydesk/internal/metrics"
	"github.com/mrlokans/librarydesk/internal/services"
)

// Core is the data access layer shared by the server and the CLI commands.
type Core struct {
	DB       *database.Database
	Audit    *audit.Service
	Registry *prometheus.Registry
	Metrics  *metrics.Collector
	Library  *services.Library
}

// NewCore opens the database and builds the library service on top of it.
func NewCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	db, err := database.NewDatabase(
		cfg.Database.Path,
		database.WithMaxIdleConns(cfg.Database.MaxIdleConns),
		database.WithLogLevel(cfg.Database.LogLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db.Connect(ctx)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	library := services.NewLibrary(
		books.NewRepository(db.DB),
		members.NewRepository(db.DB),
		transactions.NewRepository(db.DB),
		services.WithAudit(auditService),
		services.WithMetrics(collector),
		services.WithAtomicCirculation(cfg.Circulation.Atomic),
	)

	if cfg.Circulation.Atomic {
		log.Printf("Circulation mode: atomic")
	} else {
		log.Printf("Circulation mode: two-step")
	}

	return &Core{
		DB:       db,
		Audit:    auditService,
		Registry: registry,
		Metrics:  collector,
		Library:  library,
	}, nil
}

// Close flushes pending audit writes and closes the database.
func (c *Core) Close() {
	c.Audit.Wait()
	if err := c.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
