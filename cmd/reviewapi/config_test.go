package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `PORT=:4000
ENVIRONMENT=development
VERSION=1.0.0
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=review
POSTGRES_PASSWORD=secret
POSTGRES_DB=reviewdb
CODE_SECRET=code-secret
JWT_SECRET=jwt-secret
JWT_TTL=12h
CACHE_TTL=10m
MAIL_HOST=smtp.example.com
MAIL_PORT=587
MAIL_USER=mailer
MAIL_PASSWORD=mailpass
MAIL_SENDER=noreply@example.com
RABBITMQ_HOST=localhost
RABBITMQ_PORT=5672
RABBITMQ_USER=guest
RABBITMQ_PASSWORD=guest
LIMITER_RPS=10
LIMITER_BURST=20
LIMITER_ENABLED=true
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "reviewdb", cfg.DB.Name)
	assert.Equal(t, "code-secret", cfg.Auth.CodeSecret)
	assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 12*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "guest", cfg.RabbitMQ.User)
	assert.Equal(t, float64(10), cfg.Limiter.RPS)
	assert.Equal(t, 20, cfg.Limiter.Burst)
	assert.True(t, cfg.Limiter.Enabled)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `PORT=:4000
ENVIRONMENT=development
POSTGRES_HOST=localhost
CODE_SECRET=code-secret
JWT_SECRET=jwt-secret
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, float64(2), cfg.Limiter.RPS)
	assert.Equal(t, 4, cfg.Limiter.Burst)
	assert.False(t, cfg.Limiter.Enabled)
}
