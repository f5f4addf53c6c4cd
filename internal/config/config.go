package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/recasehq/recase/internal/errors"
	"github.com/recasehq/recase/internal/mapping"
	"github.com/recasehq/recase/internal/transform"
)

// Config represents the complete configuration for recase
type Config struct {
	Mapping   MappingConfig   `yaml:"mapping"`
	Transform TransformConfig `yaml:"transform"`
	Cache     CacheConfig     `yaml:"cache"`
	Dev       DevConfig       `yaml:"dev"`
}

// MappingConfig controls the explicit override table
type MappingConfig struct {
	// UseDefaults prepends the built-in domain vocabulary.
	UseDefaults bool `yaml:"use_defaults"`
	// Pairs are appended to (and may not conflict with) the defaults.
	Pairs []mapping.Pair `yaml:"pairs"`
}

// TransformConfig controls the recursive transformer
type TransformConfig struct {
	MaxDepth int  `yaml:"max_depth"`
	Lenient  bool `yaml:"lenient"`
}

// CacheConfig controls the JSON cache helper
type CacheConfig struct {
	Type       string `yaml:"type"` // "memory", "redis", or "" for disabled
	RedisURL   string `yaml:"redis_url"`
	KeyPrefix  string `yaml:"key_prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// TTL returns the configured entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// CacheTypeMemory and CacheTypeRedis are the recognized cache backends.
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Mapping: MappingConfig{
			UseDefaults: true,
			Pairs:       []mapping.Pair{},
		},
		Transform: TransformConfig{
			MaxDepth: transform.DefaultMaxDepth,
			Lenient:  false,
		},
		Cache: CacheConfig{
			Type:       "",
			KeyPrefix:  "recase:",
			TTLSeconds: 300,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that yaml decoding alone cannot reject.
func (c *Config) Validate() error {
	if c.Transform.MaxDepth < 0 {
		return errors.NewConfigError("transform.max_depth must not be negative", nil)
	}
	switch c.Cache.Type {
	case "", CacheTypeMemory, CacheTypeRedis:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown cache type '%s'", c.Cache.Type), nil)
	}
	if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
		return errors.NewConfigError("cache.redis_url is required when cache.type is redis", nil)
	}
	return nil
}

// TablePairs returns the full pair list the mapping table should be
// built from: defaults first (when enabled), then user pairs.
func (c *Config) TablePairs() []mapping.Pair {
	var pairs []mapping.Pair
	if c.Mapping.UseDefaults {
		pairs = append(pairs, mapping.DefaultPairs()...)
	}
	pairs = append(pairs, c.Mapping.Pairs...)
	return pairs
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".recase.yml", ".recase.yaml", "recase.yml", "recase.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
