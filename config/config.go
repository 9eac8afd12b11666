// Package config loads and saves scriptcore's TOML configuration,
// grounded on the teacher's config/config.go DefaultConfig/Load/Save
// shape but retargeted from emulator settings to interpreter, debugger,
// and session-server settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is scriptcore's full runtime configuration.
type Config struct {
	Execution struct {
		MaxCallDepth int  `toml:"max_call_depth"`
		EnableTrace  bool `toml:"enable_trace"`
	} `toml:"execution"`

	Debugger struct {
		HistorySize   int  `toml:"history_size"`
		ShowSource    bool `toml:"show_source"`
		ShowSlots     bool `toml:"show_slots"`
	} `toml:"debugger"`

	Display struct {
		ColorOutput   bool `toml:"color_output"`
		SourceContext int  `toml:"source_context"`
	} `toml:"display"`

	Server struct {
		ListenAddr     string `toml:"listen_addr"`
		MaxSessions    int    `toml:"max_sessions"`
		BroadcastBurst int    `toml:"broadcast_burst"`
	} `toml:"server"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCallDepth = 512
	cfg.Execution.EnableTrace = false

	cfg.Debugger.HistorySize = 1000
	cfg.Debugger.ShowSource = true
	cfg.Debugger.ShowSlots = true

	cfg.Display.ColorOutput = true
	cfg.Display.SourceContext = 3

	cfg.Server.ListenAddr = ":8787"
	cfg.Server.MaxSessions = 64
	cfg.Server.BroadcastBurst = 32

	return cfg
}

// GetConfigPath returns the platform-specific config file path,
// creating the parent directory if needed.
func GetConfigPath() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "scriptcore")

	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "scriptcore.toml"
		}
		dir = filepath.Join(home, ".config", "scriptcore")

	default:
		return "scriptcore.toml"
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "scriptcore.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to
// DefaultConfig when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error { return c.SaveTo(GetConfigPath()) }

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
