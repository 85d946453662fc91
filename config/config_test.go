package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "diskv", cfg.Timers.Driver)
	assert.Equal(t, "permissive", cfg.Bookings.StatusPolicy)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 200*time.Millisecond, cfg.Server.SlowRequest)
	assert.Equal(t, 30*time.Minute, cfg.Bookings.SessionIdle)
	assert.False(t, cfg.Twilio.Enabled())
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TIMER_STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SLOW_REQUEST_MS", "50")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("BOOKING_STATUS_POLICY", "forward")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Timers.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 50*time.Millisecond, cfg.Server.SlowRequest)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "forward", cfg.Bookings.StatusPolicy)
	assert.True(t, cfg.Auth.Enabled())
}
