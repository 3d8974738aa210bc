package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Session
		Security
		Circulation
		Audit
		Tasks
		Maintenance
	}

	HTTP struct {
		Port int32
		Host string
		// Proxies whose X-Forwarded-For is believed. Empty means the
		// client IP is always the connection's remote address.
		TrustedProxies []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // Blocks every write, e.g. during a stocktake
	}
	Database struct {
		Path string
		// MaxIdleConns of 0 closes every connection when an operation releases it.
		MaxIdleConns int
		LogLevel     string // silent, error, warn, info
	}
	UI struct {
		TemplatesPath string // Empty uses the embedded templates
		StaticPath    string // Empty uses the embedded assets
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Security struct {
		CSRFEnabled bool
		CSRFSecret  string

		WriteRateLimitPerMinute int // 0 disables write rate limiting
		WriteRateLimitBurst     int
	}
	Circulation struct {
		// Atomic runs borrow/return as a single unit of work instead of
		// two independent requests.
		Atomic bool
	}
	Audit struct {
		RetentionDays int
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

// NewConfig reads the configuration from environment variables,
// falling back to the defaults below.
func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("trusted_proxies", "") // Comma-separated IPs or CIDRs
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("read_only", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_max_idle_conns", 0)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("write_rate_limit_per_minute", 120)
	v.SetDefault("write_rate_limit_burst", 30)

	v.SetDefault("circulation_atomic", false)
	v.SetDefault("audit_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY"),
		},
		Database: Database{
			Path:         v.GetString("DATABASE_PATH"),
			MaxIdleConns: v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			LogLevel:     v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Security: Security{
			CSRFEnabled:             v.GetBool("CSRF_ENABLED"),
			CSRFSecret:              v.GetString("CSRF_SECRET"),
			WriteRateLimitPerMinute: v.GetInt("WRITE_RATE_LIMIT_PER_MINUTE"),
			WriteRateLimitBurst:     v.GetInt("WRITE_RATE_LIMIT_BURST"),
		},
		Circulation: Circulation{
			Atomic: v.GetBool("CIRCULATION_ATOMIC"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
	}
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
