package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/rutas", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "rutas"), got)
	})
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/from-env")
		got, err := ResolveConfigDir("/tmp/from-flag")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/from-flag", got)
	})

	t.Run("env beats default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/from-env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/from-env", got)
	})
}

func TestResolveDataDir(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/tmp/env-data")
		got, err := ResolveDataDir("/tmp/flag-data", "/tmp/cfg-data")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag-data", got)
	})

	t.Run("config value beats env", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/tmp/env-data")
		got, err := ResolveDataDir("", "/tmp/cfg-data")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/cfg-data", got)
	})

	t.Run("env beats cwd", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/tmp/env-data")
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env-data", got)
	})

	t.Run("cwd as last resort", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		cwd, err := os.Getwd()
		require.NoError(t, err)
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, cwd, got)
	})
}

func TestResolveStorePath(t *testing.T) {
	t.Run("precedence chain", func(t *testing.T) {
		t.Setenv(EnvStorePath, "/tmp/env-store.db")

		got, err := ResolveStorePath("/tmp/flag-store.db", "/tmp/cfg-store.db")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag-store.db", got)

		got, err = ResolveStorePath("", "/tmp/cfg-store.db")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/cfg-store.db", got)

		got, err = ResolveStorePath("", "")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env-store.db", got)
	})

	t.Run("cwd-relative default", func(t *testing.T) {
		t.Setenv(EnvStorePath, "")
		cwd, err := os.Getwd()
		require.NoError(t, err)
		got, err := ResolveStorePath("", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, DefaultStoreName), got)
	})
}
