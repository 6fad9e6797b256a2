package pathfind

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for tile size / agent radius combinations the
// pathfinder cannot work with
var ErrInvalidConfig = errors.New("pathfind: invalid config")

// Config holds the agent geometry the pathfinder is built for
type Config struct {
	TileSize    int     `yaml:"tile_size"`    // pixels per tile
	AgentRadius float64 `yaml:"agent_radius"` // pixels
	Epsilon     float64 `yaml:"epsilon"`      // corner inset, in tiles

	// Logger receives build statistics and query diagnostics; nil means log.Default()
	Logger *log.Logger `yaml:"-"`
}

// DefaultConfig returns 16px tiles with an agent half a tile wide
func DefaultConfig() Config {
	return Config{
		TileSize:    16,
		AgentRadius: 8,
		Epsilon:     0.01,
	}
}

// LoadConfig reads a YAML config; keys that are absent keep their defaults
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pathfind: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pathfind: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the agent fits inside one tile and the corner inset is
// smaller than the agent
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	}
	if c.AgentRadius <= 0 || c.AgentRadius > float64(c.TileSize)/2 {
		return fmt.Errorf("%w: agent radius %g must be in (0, %g]", ErrInvalidConfig, c.AgentRadius, float64(c.TileSize)/2)
	}
	if c.Epsilon < 0 || c.Epsilon >= c.AgentRadius/float64(c.TileSize) {
		return fmt.Errorf("%w: epsilon %g must be in [0, %g)", ErrInvalidConfig, c.Epsilon, c.AgentRadius/float64(c.TileSize))
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
