// Config loading for the rutas CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/montaraz/rutas/internal/paths"
	"github.com/montaraz/rutas/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir     = "data_dir"
	cfgKeyStorePath   = "store_path"
	cfgKeyStateID     = "state_id"
	cfgKeyEditor      = "editor"
	cfgKeyTolerance   = "simplify_tolerance_m"
	cfgKeyMarkerCount = "marker_count"
	cfgKeySaveDelayMs = "save_delay_ms"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Rutas CLI configuration

# Baseline dataset directory (routes.json, folders.json, data/*.geojson)
# data_dir:

# Shared state store file
# store_path:

# Shared state document key
state_id: main

# Shared editor login
editor: ramon

# Simplification tolerance in meters
simplify_tolerance_m: 5

# Direction markers per route
marker_count: 10

# Debounce before a scheduled save fires, in milliseconds
save_delay_ms: 900
`

// loadConfig reads config.yaml from the resolved config directory and
// merges the global flags over it. The config directory and a default
// config.yaml are created on first run; a missing file is not an error.
func loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyStateID, types.DefaultStateID)
	v.SetDefault(cfgKeyTolerance, types.DefaultToleranceM)
	v.SetDefault(cfgKeyMarkerCount, types.DefaultMarkerCount)
	v.SetDefault(cfgKeySaveDelayMs, int(types.DefaultSaveDelay/time.Millisecond))
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.DefaultConfig()
	cfg.StateID = v.GetString(cfgKeyStateID)
	if e := v.GetString(cfgKeyEditor); e != "" {
		cfg.Editor = e
	}
	cfg.ToleranceM = v.GetFloat64(cfgKeyTolerance)
	cfg.MarkerCount = v.GetInt(cfgKeyMarkerCount)
	cfg.SaveDelay = time.Duration(v.GetInt(cfgKeySaveDelayMs)) * time.Millisecond

	cfg.DataDir, err = paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.StorePath, err = paths.ResolveStorePath(flags.storePath, v.GetString(cfgKeyStorePath))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve store path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
