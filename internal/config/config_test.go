package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range env {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	// keep a stray .env in the package directory from leaking in
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/todos")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/todos", cfg.Database.URL)
	require.Equal(t, 5, cfg.Database.MaxConns)
	require.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	require.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Zero(t, cfg.RateLimit.RPS)
	require.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load(nil)
	require.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite://data/todos.db")
	t.Setenv("DATABASE_MAX_CONNS", "9")
	t.Setenv("TODO_ADDR", ":8080")
	t.Setenv("TODO_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TODO_RATE_LIMIT_RPS", "2.5")
	t.Setenv("TODO_RATE_LIMIT_BURST", "4")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Database.MaxConns)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, 4, cfg.RateLimit.Burst)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env/todos")
	t.Setenv("TODO_ADDR", ":8080")

	cfg, err := Load([]string{"--addr", ":9090", "--database-url", "sqlite://flag.db", "--log-format", "json"})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "sqlite://flag.db", cfg.Database.URL)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("DATABASE_URL=sqlite://dotenv.db\n"), 0o600))
	// godotenv sets variables process-wide; unset them once the test ends
	t.Cleanup(func() { _ = os.Unsetenv("DATABASE_URL") })

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "sqlite://dotenv.db", cfg.Database.URL)
}

func TestLoadRejectsUnknownFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/todos")

	_, err := Load([]string{"--nope"})
	require.Error(t, err)
}
