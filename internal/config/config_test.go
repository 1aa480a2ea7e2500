package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "SESSION_TTL", "SESSION_SWEEP_INTERVAL", "VARIANT_DEADLINE", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 5*time.Minute, cfg.VariantDeadline)
	assert.False(t, cfg.HasDatabase())
}

func TestGetDurationFormats(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getDuration("TEST_DURATION", time.Minute))

	// Bare seconds are accepted
	t.Setenv("TEST_DURATION", "45")
	assert.Equal(t, 45*time.Second, getDuration("TEST_DURATION", time.Minute))

	// Garbage falls back to the default
	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Minute, getDuration("TEST_DURATION", time.Minute))

	assert.Equal(t, time.Minute, getDuration("TEST_DURATION_UNSET", time.Minute))
}

func TestHasDatabase(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasDatabase())

	cfg.DatabaseURL = "postgres://localhost/menus"
	assert.True(t, cfg.HasDatabase())
}
