package pathfind

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		ok   bool
	}{
		{"default", func(*Config) {}, true},
		{"small agent", func(c *Config) { c.AgentRadius = 3 }, true},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, true},
		{"zero tile", func(c *Config) { c.TileSize = 0 }, false},
		{"zero radius", func(c *Config) { c.AgentRadius = 0 }, false},
		{"radius wider than half a tile", func(c *Config) { c.AgentRadius = 9 }, false},
		{"negative epsilon", func(c *Config) { c.Epsilon = -0.1 }, false},
		{"epsilon swallows agent", func(c *Config) { c.Epsilon = 0.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate: %v, want ErrInvalidConfig", err)
			}
			if _, err := New(cfg); (err == nil) != tt.ok {
				t.Fatalf("New: %v", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathfind.yaml")
	if err := os.WriteFile(path, []byte("tile_size: 32\nagent_radius: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TileSize != 32 || cfg.AgentRadius != 12 || cfg.Epsilon != 0.01 {
		t.Fatalf("cfg = %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("agent_radius: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("LoadConfig: %v, want ErrInvalidConfig", err)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadConfig missing: %v", err)
	}
}

func TestShippedConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "pathfind.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg.TileSize != want.TileSize || cfg.AgentRadius != want.AgentRadius || cfg.Epsilon != want.Epsilon {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
