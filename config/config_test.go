package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DB:  DBConfig{Host: "localhost", Port: 5432, User: "app", Name: "mandalart"},
		JWT: JWTConfig{Secret: "secret"},
		AI:  AIConfig{APIKey: "key", Model: "some-model"},
		App: AppConfig{Locale: "en", HistoryBackend: "postgres"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.AI.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AI.Model = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.DB.Host = ""
	assert.Error(t, cfg.Validate())

	// The db settings only matter for the postgres backend.
	cfg = validConfig()
	cfg.DB = DBConfig{}
	cfg.App.HistoryBackend = "memory"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.App.HistoryBackend = "redis"
	assert.Error(t, cfg.Validate())
	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.App.HistoryBackend = "filesystem"
	assert.Error(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jwt:
  secret: s3cret
ai:
  api_key: key
  model: some-model
app:
  history_backend: memory
`), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	// Defaults fill in what the file leaves out.
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, 120, cfg.AI.TimeoutSeconds)
	assert.Equal(t, "memory", cfg.App.HistoryBackend)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jwt:
  secret: s3cret
ai:
  api_key: key
  model: some-model
app:
  history_backend: memory
  locale: en
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_LOCALE", "pt")
	t.Setenv("AI_MODEL", "override-model")
	t.Setenv("SERVER_PORT", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pt", cfg.App.Locale)
	assert.Equal(t, "override-model", cfg.AI.Model)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
