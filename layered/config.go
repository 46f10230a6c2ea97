package layered

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/layered/observability"
)

// Config holds Map initialization parameters.
type Config struct {
	Observer string `json:"observer,omitempty"` // Registered observer name.
}

// DefaultConfig returns the default configuration (events discarded).
func DefaultConfig() Config {
	return Config{
		Observer: "noop",
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// FromConfig creates a Map over layers whose observer is looked up by name in
// the observability registry. A nil cfg is treated as DefaultConfig.
func FromConfig[K comparable, V any](cfg *Config, layers ...Layer[K, V]) (*Map[K, V], error) {
	name := DefaultConfig().Observer
	if cfg != nil && cfg.Observer != "" {
		name = cfg.Observer
	}

	observer, err := observability.GetObserver(name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	return newMap(observer, layers), nil
}
