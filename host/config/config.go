// Package config loads holdboard CLI settings
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"holdboard/host/serial"
)

const (
	LinkSerial    = "serial"
	LinkWebSocket = "websocket"
)

// Environment variables that override the config file
const (
	EnvDevice    = "HOLDBOARD_DEVICE"
	EnvBridgeURL = "HOLDBOARD_BRIDGE_URL"
	EnvLink      = "HOLDBOARD_LINK"
	EnvLayout    = "HOLDBOARD_LAYOUT"
)

// Config holds the holdboard configuration
type Config struct {
	Link         string        `yaml:"link" json:"link"`
	Serial       serial.Config `yaml:"serial" json:"serial"`
	BridgeURL    string        `yaml:"bridge_url" json:"bridge_url"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	LayoutPath   string        `yaml:"layout" json:"layout"`
	OutputFormat string        `yaml:"output_format" json:"output_format"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Link:         LinkSerial,
		Serial:       *serial.DefaultConfig("/dev/ttyUSB0"),
		WriteTimeout: 10 * time.Second,
		OutputFormat: "text",
	}
}

// DefaultPath returns the default config file path: ~/.holdboard/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".holdboard", "config.yaml")
	}
	return filepath.Join(home, ".holdboard", "config.yaml")
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns the defaults with no error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills in values a partial file left empty
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Link == "" {
		cfg.Link = def.Link
	}
	if cfg.Serial.Device == "" {
		cfg.Serial.Device = def.Serial.Device
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = def.Serial.Baud
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = def.OutputFormat
	}
}

// LoadEnv loads a .env file into the process environment when it exists.
// Variables already set are not overwritten.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any HOLDBOARD_* variables that are set
func (cfg *Config) ApplyEnv() {
	if v := os.Getenv(EnvDevice); v != "" {
		cfg.Serial.Device = v
	}
	if v := os.Getenv(EnvBridgeURL); v != "" {
		cfg.BridgeURL = v
	}
	if v := os.Getenv(EnvLink); v != "" {
		cfg.Link = v
	}
	if v := os.Getenv(EnvLayout); v != "" {
		cfg.LayoutPath = v
	}
}

// Validate checks enumerated settings
func (cfg *Config) Validate() error {
	switch cfg.Link {
	case LinkSerial, LinkWebSocket:
	default:
		return fmt.Errorf("unknown link %q (want %s or %s)", cfg.Link, LinkSerial, LinkWebSocket)
	}
	switch cfg.OutputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", cfg.OutputFormat)
	}
	if cfg.Link == LinkWebSocket && cfg.BridgeURL == "" {
		return fmt.Errorf("link %s requires bridge_url", LinkWebSocket)
	}
	return nil
}
