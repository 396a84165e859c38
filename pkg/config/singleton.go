package config

import (
	"fmt"
	"sync"
)

// Adjust modifies a freshly loaded configuration before it is published, for
// example to apply command-line flags on top of the file.
type Adjust func(*Config)

var (
	// mu guards the process configuration and how it was loaded.
	mu      sync.RWMutex
	current *Config
	source  string
	adjust  Adjust
)

// Install loads the configuration at path (empty for defaults only), applies
// environment overrides and adj, and publishes the result as the process
// configuration. path and adj are remembered for Reload. On error the
// process configuration is left unchanged.
func Install(path string, adj Adjust) (*Config, error) {
	cfg, err := load(path, adj)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	current, source, adjust = cfg, path, adj
	mu.Unlock()

	return cfg, nil
}

// Reload reads the installed path again. The process configuration is
// replaced only if loading and validation succeed.
func Reload() (*Config, error) {
	mu.RLock()
	path, adj := source, adjust
	mu.RUnlock()

	cfg, err := load(path, adj)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}

	mu.Lock()
	current = cfg
	mu.Unlock()

	return cfg, nil
}

func load(path string, adj Adjust) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}
	if adj != nil {
		adj(cfg)
	}
	return cfg, nil
}

// GetConfig returns the process configuration, or nil before Install. The
// returned value is shared and must not be modified.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig publishes cfg as the process configuration without reading a
// file. A nil cfg clears it. A later Reload still reads the installed path.
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// MustGetConfig returns the process configuration and panics before Install.
func MustGetConfig() *Config {
	cfg := GetConfig()
	if cfg == nil {
		panic("configuration not installed: call Install first")
	}
	return cfg
}
