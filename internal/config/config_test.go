package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/levaetras/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "entregas")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("INVOICE_DUE_DAYS", "15")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 15, cfg.Invoice.DueDays)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "postgres://app:pw@db:5433/entregas?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := config.Load()
	assert.Error(t, err)
}
