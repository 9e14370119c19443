package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "8001", cfg.AppPort)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.S3.Enabled())
	assert.True(t, cfg.Otel.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_NAME", "accounts")
	t.Setenv("S3_BUCKET_NAME", "avatars")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.JWT.ExpiresIn)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "postgres://app:p%40ss%20word@db:6543/accounts?sslmode=disable", cfg.DB.URL())
	assert.True(t, cfg.S3.Enabled())
	assert.True(t, cfg.S3.UsePathStyle)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.dev")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nAPP_PORT=9000\n"), 0o600))
	t.Setenv("APP_PORT", "7000")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "7000", cfg.AppPort)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRES_IN", "-1h")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
