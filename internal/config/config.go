// Package config handles loading and validation of crawlward
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	Fetch  FetchConfig  `yaml:"fetch"`
	Cache  CacheConfig  `yaml:"cache"`
	Policy PolicyConfig `yaml:"policy"`
	Proxy  ProxyConfig  `yaml:"proxy"`
}

// FetchConfig controls how robots.txt documents are retrieved.
type FetchConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CacheConfig controls per-site policy caching. A TTL of zero keeps
// entries for the life of the process.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// PolicyConfig defines hosts exempt from robots checking.
type PolicyConfig struct {
	SkipHosts []string `yaml:"skip_hosts"` // Host glob patterns
}

// ProxyConfig defines the enforcing proxy listener.
type ProxyConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			UserAgent:      "crawlward/0.1",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{TTLMinutes: 60},
		Proxy: ProxyConfig{Listen: "127.0.0.1:8571"},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".crawlward", "config.yaml"), nil
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Fetch.UserAgent == "" {
		return fmt.Errorf("fetch.user_agent cannot be empty")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive")
	}
	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes cannot be negative")
	}
	return nil
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// TTL returns the cache TTL as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}
