// Package config manages the client-side configuration record.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultServerURL is used when no server has been configured yet.
	DefaultServerURL = "http://127.0.0.1:7525"

	configFileName  = ".ferry.toml"
	configDirEnvKey = "FERRY_CONFIG_DIR"
	serverURLEnvKey = "FERRY_SERVER_URL"
	apiKeyEnvKey    = "FERRY_API_KEY"
)

// ErrCorrupt marks a config file that exists but cannot be parsed. Callers
// re-prompt for settings instead of failing.
var ErrCorrupt = errors.New("config file is corrupt")

// Config is the persisted client configuration.
type Config struct {
	ServerURL string `toml:"server_url"`
	APIKey    string `toml:"api_key"`
}

// Default returns configuration defaults.
func Default() Config {
	return Config{ServerURL: DefaultServerURL}
}

// Path returns the config file location: $FERRY_CONFIG_DIR/.ferry.toml when
// the override is set, otherwise ~/.ferry.toml.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// Load reads the config file and applies env overrides. The second return
// reports whether a usable file was found; a parse failure returns an error
// wrapping ErrCorrupt.
func Load() (Config, bool, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, false, err
	}

	found := false
	info, statErr := os.Stat(path)
	switch {
	case statErr == nil && !info.IsDir():
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Default(), false, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
		}
		found = true
	case statErr != nil && !os.IsNotExist(statErr):
		return cfg, false, statErr
	}

	if url := strings.TrimSpace(os.Getenv(serverURLEnvKey)); url != "" {
		cfg.ServerURL = url
	}
	if key := strings.TrimSpace(os.Getenv(apiKeyEnvKey)); key != "" {
		cfg.APIKey = key
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	return cfg, found, nil
}

// Save writes cfg to the config file, creating parent directories.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Remove deletes the config file if present, for regeneration on demand.
func Remove() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
