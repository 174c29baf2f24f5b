package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns <user config dir>/haxeget/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "haxeget", "config.yaml"), nil
}

// LoadConfig reads configFile and fills unset keys with defaults.
// A missing file is not an error; malformed YAML is.
func LoadConfig(configFile string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal %s: %w", configFile, err)
	}

	if fileCfg.Root != "" {
		cfg.Root = fileCfg.Root
	}
	if fileCfg.GitHubAPI != "" {
		cfg.GitHubAPI = fileCfg.GitHubAPI
	}
	if fileCfg.NightlyURL != "" {
		cfg.NightlyURL = fileCfg.NightlyURL
	}
	if fileCfg.UserAgent != "" {
		cfg.UserAgent = fileCfg.UserAgent
	}
	if fileCfg.Timeout > 0 {
		cfg.Timeout = fileCfg.Timeout
	}
	cfg.Lock = fileCfg.Lock
	cfg.AutoUse = fileCfg.AutoUse
	return cfg, nil
}
