package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfigWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, Default(), cfg)

	// The default file is written so the next start picks it up.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadHonorsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":9999\"\nstore_backend: sqlite\nchat_log_path: other-log.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, StoreBackendSQLite, cfg.StoreBackend)
	require.Equal(t, "other-log.txt", cfg.ChatLogPath)
	// Untouched keys keep their defaults.
	require.Equal(t, Default().ShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9999\"\n"), 0o600))

	t.Setenv("CHATRELAY_ADDR", ":7777")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, ":7777", cfg.Addr)
}

func TestUpdateFromSkipsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":8080"})

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, Default().LogLevel, cfg.LogLevel)
	require.Equal(t, Default().ChatLogPath, cfg.ChatLogPath)
}
