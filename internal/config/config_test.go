package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "events", cfg.Database.Name)
	assert.Equal(t, 8*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://portal.example.com, https://admin.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, []string{"https://portal.example.com", "https://admin.example.com"}, cfg.Security.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "too-short")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", Name: "events", SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=events sslmode=disable", c.DSN())
}
