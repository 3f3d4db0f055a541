// Package config persists the small bits of state that survive between
// runs: which vault was opened last and how the UI should look.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const fileName = "aegis-tui/config.json"

// Config is the on-disk settings file. Zero values mean "unset".
type Config struct {
	LastOpenedVault  string `json:"last_opened_vault,omitempty"`
	LastVaultDir     string `json:"last_vault_dir,omitempty"`
	DefaultColorMode *bool  `json:"default_color_mode,omitempty"`
	ClipboardTool    string `json:"clipboard_tool,omitempty"`
}

// ColorEnabled reports the configured color preference; unset means on.
func (c Config) ColorEnabled() bool {
	return c.DefaultColorMode == nil || *c.DefaultColorMode
}

// Path returns the config file location under the XDG config directory,
// creating parent directories as needed.
func Path() (string, error) {
	return xdg.ConfigFile(fileName)
}

// Load reads the config file. A missing file yields an empty config so
// first runs need no setup; an unreadable or corrupt file also falls
// back to the defaults, with the error returned for the caller to
// report.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to its default location.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("config: resolve path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
