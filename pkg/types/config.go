package types

import (
	"errors"
	"time"
)

// Defaults applied by DefaultConfig and by Validate-time backfill.
const (
	DefaultStateID       = "main"
	DefaultToleranceM    = 5.0
	DefaultMarkerCount   = 10
	DefaultSaveDelay     = 900 * time.Millisecond
	DefaultImmediateWait = 10 * time.Millisecond
)

// Config validation errors.
var (
	ErrDataDirEmpty     = errors.New("data_dir must not be empty")
	ErrStorePathEmpty   = errors.New("store_path must not be empty")
	ErrToleranceInvalid = errors.New("simplify tolerance must be positive")
	ErrMarkersInvalid   = errors.New("marker count must be positive")
)

// Config holds the parameters a session needs: where the baseline dataset
// lives, where the shared state store lives, and the tuning knobs of the
// ingestion pipeline and the save scheduler.
type Config struct {
	// DataDir is the baseline dataset directory holding routes.json,
	// folders.json and data/*.geojson.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StorePath is the SQLite file backing the shared state store.
	StorePath string `json:"store_path" yaml:"store_path"`

	// StateID keys the single shared document. All sessions share one.
	StateID string `json:"state_id" yaml:"state_id"`

	// Editor is the shared login name for edit sessions.
	Editor string `json:"editor" yaml:"editor"`

	// ToleranceM is the simplification tolerance in meters.
	ToleranceM float64 `json:"simplify_tolerance_m" yaml:"simplify_tolerance_m"`

	// MarkerCount is the direction marker target per route.
	MarkerCount int `json:"marker_count" yaml:"marker_count"`

	// SaveDelay is the debounce interval before a scheduled save fires.
	SaveDelay time.Duration `json:"save_delay" yaml:"save_delay"`

	// ImmediateWait is the near-zero delay used by immediate triggers.
	ImmediateWait time.Duration `json:"immediate_wait" yaml:"immediate_wait"`
}

// DefaultConfig returns a Config with every tunable at its default.
func DefaultConfig() Config {
	return Config{
		StateID:       DefaultStateID,
		Editor:        "ramon",
		ToleranceM:    DefaultToleranceM,
		MarkerCount:   DefaultMarkerCount,
		SaveDelay:     DefaultSaveDelay,
		ImmediateWait: DefaultImmediateWait,
	}
}

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure. Zero-valued tunables are backfilled with
// defaults before checking.
func (c *Config) Validate() error {
	if c.StateID == "" {
		c.StateID = DefaultStateID
	}
	if c.ToleranceM == 0 {
		c.ToleranceM = DefaultToleranceM
	}
	if c.MarkerCount == 0 {
		c.MarkerCount = DefaultMarkerCount
	}
	if c.SaveDelay == 0 {
		c.SaveDelay = DefaultSaveDelay
	}
	if c.ImmediateWait == 0 {
		c.ImmediateWait = DefaultImmediateWait
	}
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.StorePath == "" {
		return ErrStorePathEmpty
	}
	if c.ToleranceM < 0 {
		return ErrToleranceInvalid
	}
	if c.MarkerCount < 0 {
		return ErrMarkersInvalid
	}
	return nil
}
