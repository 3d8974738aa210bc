package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/librarydesk/internal/entities"
)

// Database wraps the gorm connection to the library store.
type Database struct {
	DB *gorm.DB
}

type options struct {
	maxIdleConns int
	logLevel     logger.LogLevel
}

// Option customizes how NewDatabase opens the store.
type Option func(*options)

// WithMaxIdleConns sets how many released connections are kept for reuse.
// Zero means every connection is closed as soon as it is released.
func WithMaxIdleConns(n int) Option {
	return func(o *options) {
		o.maxIdleConns = n
	}
}

// WithLogLevel sets the SQL logger level: silent, error, warn or info.
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = ParseLogLevel(level)
	}
}

// NewDatabase opens the SQLite file at dbPath, creating it if needed,
// and migrates the schema.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(o.maxIdleConns)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Member{},
		&entities.Transaction{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func dsn(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_busy_timeout=5000"
}

// ParseLogLevel maps a configuration string to a gorm log level.
// Unknown values fall back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping acquires a connection and checks the store answers.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Connect verifies the store is reachable and logs the outcome.
func (d *Database) Connect(ctx context.Context) {
	if err := d.Ping(ctx); err != nil {
		log.Printf("Database connection error: %v", err)
		return
	}
	log.Printf("Database connected successfully")
}

// WithConnection runs fn on a connection acquired for this call only.
// The connection is released when fn returns, whether or not it failed.
func WithConnection(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	return db.WithContext(ctx).Connection(fn)
}
