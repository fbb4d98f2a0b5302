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
	t.Chdir(t.TempDir())

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, "sqlite", s.Storage.Driver)
	assert.Equal(t, "pillpal.db", s.Storage.SQLite.Path)
	assert.True(t, s.Reminders.Enabled)
	assert.Equal(t, "* * * * *", s.Reminders.Schedule)
	assert.Equal(t, "gemini-2.5-flash", s.Gemini.Model)
	assert.Equal(t, "assets/icon-192.svg", s.Notify.Icon)
	assert.Equal(t, 10*time.Second, s.Notify.Timeout)
	assert.Empty(t, s.Notify.URLs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PILLPAL_STORAGE_DRIVER", "memory")
	t.Setenv("PILLPAL_LOG_LEVEL", "debug")
	t.Setenv("API_KEY", "from-legacy-env")
	t.Setenv("PILLPAL_NOTIFY_URLS", "ntfy://ntfy.sh/pills, logger://")

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "memory", s.Storage.Driver)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "from-legacy-env", s.Gemini.APIKey)
	assert.Equal(t, []string{"ntfy://ntfy.sh/pills", "logger://"}, s.Notify.URLs)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: postgres
  postgres:
    dsn: postgres://u:p@localhost/pillpal
reminders:
  schedule: "*/5 * * * *"
`), 0o600))

	s, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", s.Storage.Driver)
	assert.Equal(t, "*/5 * * * *", s.Reminders.Schedule)
}

func TestValidate_Rejects(t *testing.T) {
	s := &Settings{Storage: Storage{Driver: "postgres"}, Gemini: Gemini{Model: "m"}}
	require.Error(t, s.Validate())

	s = &Settings{Storage: Storage{Driver: "redis"}, Gemini: Gemini{Model: "m"}}
	require.Error(t, s.Validate())

	s = &Settings{Storage: Storage{Driver: "memory"}, Reminders: Reminders{Enabled: true}, Gemini: Gemini{Model: "m"}}
	require.Error(t, s.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, LoadDotEnv())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PILLPAL_TEST_DOTENV=yes\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PILLPAL_TEST_DOTENV") })
	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "yes", os.Getenv("PILLPAL_TEST_DOTENV"))
}
