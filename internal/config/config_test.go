package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 0, cfg.Database.MaxIdleConns)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.True(t, cfg.Security.CSRFEnabled)
	assert.Equal(t, 120, cfg.Security.WriteRateLimitPerMinute)
	assert.False(t, cfg.Circulation.Atomic)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 * * * *", cfg.Maintenance.Schedule)
	assert.False(t, cfg.Global.ReadOnly)
	assert.Empty(t, cfg.HTTP.TrustedProxies)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("CIRCULATION_ATOMIC", "true")
	t.Setenv("SESSION_LIFETIME", "2h")
	t.Setenv("MAINTENANCE_SCHEDULE", "*/15 * * * *")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16,")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.True(t, cfg.Circulation.Atomic)
	assert.Equal(t, 2*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, "*/15 * * * *", cfg.Maintenance.Schedule)
	assert.True(t, cfg.Global.ReadOnly)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.HTTP.TrustedProxies)
}
