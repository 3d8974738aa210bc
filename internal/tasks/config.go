package tasks

import "time"

// Config holds configuration for the maintenance task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when a task stuck in a crashed worker is picked up again. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged. Default: 1h
	CleanupInterval time.Duration

	// AuditRetentionDays is the default age for audit cleanup. Default: 30
	AuditRetentionDays int
}

// DefaultConfig returns the settings used for zero values.
func DefaultConfig() Config {
	return Config{
		Workers:            1,
		ReleaseAfter:       15 * time.Minute,
		CleanupInterval:    1 * time.Hour,
		AuditRetentionDays: 30,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = d.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	if c.AuditRetentionDays <= 0 {
		c.AuditRetentionDays = d.AuditRetentionDays
	}
	return c
}
