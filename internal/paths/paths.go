// Package paths resolves configuration, dataset and store locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultStoreName is the CWD-relative default location of the shared state
// store file.
const DefaultStoreName = ".rutas-db/state.db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RUTAS_CONFIG_DIR"
	EnvDataDir   = "RUTAS_DATA_DIR"
	EnvStorePath = "RUTAS_STORE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/rutas (fallback ~/.config/rutas)
// macOS:   ~/Library/Application Support/rutas
// Windows: %APPDATA%/rutas
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "rutas"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "rutas"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "rutas"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > RUTAS_CONFIG_DIR env > platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the baseline dataset directory: flag > config.yaml
// value > RUTAS_DATA_DIR env > current directory.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}

// ResolveStorePath returns the shared state store file: flag > config.yaml
// value > RUTAS_STORE env > CWD-relative default.
func ResolveStorePath(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvStorePath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultStoreName), nil
}
