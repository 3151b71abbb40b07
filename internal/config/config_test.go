package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bazaar/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TAX_RATE", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	cfg := config.Load()
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "0.05", cfg.TaxRate.String())
	assert.Equal(t, 2*time.Hour, cfg.SessionIdle)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("password123")))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TAX_RATE", "0.18")
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$04$precomputed")
	t.Setenv("SESSION_IDLE", "30m")

	cfg := config.Load()
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "0.18", cfg.TaxRate.String())
	assert.Equal(t, "owner", cfg.AdminUsername)
	assert.Equal(t, "$2a$04$precomputed", cfg.AdminPasswordHash)
}

func TestLoadRejectsBadRate(t *testing.T) {
	t.Setenv("TAX_RATE", "-1")
	t.Setenv("ADMIN_PASSWORD_HASH", "x")
	cfg := config.Load()
	assert.Equal(t, "0.05", cfg.TaxRate.String())
}
