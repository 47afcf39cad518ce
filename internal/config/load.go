package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file to use when -config is not given.
const EnvConfig = "LAUNCHPAD_CONFIG"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing file among $LAUNCHPAD_CONFIG,
// ./config.yaml and the user config directory.
func findConfigFile() string {
	var candidates []string
	if env := os.Getenv(EnvConfig); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates,
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	)

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil && runtime.GOOS != "linux" {
		return filepath.Join(dir, "Launchpad")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "launchpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "launchpad")
}

// loadFromFile merges a YAML file over cfg. Unknown keys are an error and an
// empty file is not.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
