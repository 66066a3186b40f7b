package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive an engine
var ErrInvalidConfig = errors.New("invalid config")

// SizePreset is a named grid size offered by the front-end
type SizePreset struct {
	Name    string
	Columns int
	Rows    int
}

var (
	// SizePresets are the grid sizes bound to the 1, 2 and 3 keys
	SizePresets = []SizePreset{
		{Name: "15x15", Columns: 15, Rows: 15},
		{Name: "25x25", Columns: 25, Rows: 25},
		{Name: "31x31", Columns: 31, Rows: 31},
	}

	// SpeedPresets are the tick intervals bound to the z, x and c keys
	SpeedPresets = []time.Duration{
		500 * time.Millisecond,
		1000 * time.Millisecond,
		2000 * time.Millisecond,
	}
)

// Config holds the configuration for the game
type Config struct {
	Columns          int    `json:"columns"`
	Rows             int    `json:"rows"`
	TickIntervalMs   int    `json:"tick_interval_ms"`
	StartRunning     bool   `json:"start_running"`
	RandomizeOnStart bool   `json:"randomize_on_start"`
	UseParallel      bool   `json:"use_parallel"`
	UseMemoryPool    bool   `json:"use_memory_pool"`
	Seed             uint64 `json:"seed"` // 0 picks a random seed
}

// DefaultConfig returns a paused, empty 25x25 board ticking once a second
func DefaultConfig() Config {
	return Config{
		Columns:        25,
		Rows:           25,
		TickIntervalMs: 1000,
		UseMemoryPool:  true,
	}
}

// TickInterval returns the configured tick period
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Validate checks that dimensions and tick interval are positive
func (c Config) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be positive, got %dx%d", c.Columns, c.Rows)
	}
	if c.TickIntervalMs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] tick interval must be positive, got %dms", c.TickIntervalMs)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}
