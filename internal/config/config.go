// Package config holds the game server settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr         string            `yaml:"addr"`
	AllowOrigins string            `yaml:"allowOrigins"`
	WebSocket    WebSocketConfig   `yaml:"websocket"`
	Matchmaking  MatchmakingConfig `yaml:"matchmaking"`
}

type WebSocketConfig struct {
	ReadBufferSize  int      `yaml:"readBufferSize"`
	WriteBufferSize int      `yaml:"writeBufferSize"`
	Origins         []string `yaml:"origins"`
}

type MatchmakingConfig struct {
	// Interval between attempts to pair queued players.
	Interval time.Duration `yaml:"interval"`
}

// NewConfig returns the settings used when no file is given.
func NewConfig() *Config {
	return &Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         []string{"http://localhost:5173"},
		},
		Matchmaking: MatchmakingConfig{
			Interval: time.Second,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return NewConfig(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr is empty: %w", ErrInvalidConfig)
	case c.WebSocket.ReadBufferSize <= 0 || c.WebSocket.WriteBufferSize <= 0:
		return fmt.Errorf("websocket buffer sizes must be positive: %w", ErrInvalidConfig)
	case c.Matchmaking.Interval <= 0:
		return fmt.Errorf("matchmaking interval must be positive: %w", ErrInvalidConfig)
	}
	return nil
}
