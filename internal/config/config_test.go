package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_DRIVER", "")
	dir := writeConfig(t, `
server:
  port: "8080"
database:
  driver: sqlite
  path: ":memory:"
jwt:
  secret: dev-secret
storage:
  type: local
  local_path: `+filepath.Join(t.TempDir(), "uploads")+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, int64(5242880), cfg.Upload.MaxFileSize)
	assert.Equal(t, 5, cfg.Upload.MaxFiles)
	assert.ElementsMatch(t, DefaultAllowedTypes, cfg.Upload.AllowedTypes)
	assert.Equal(t, 10, cfg.Feedback.DefaultPageSize)
	assert.NotEmpty(t, cfg.ConfigFile)
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is too short")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 100, cfg.Feedback.MaxPageSize)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}
