package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/getalts/getalts-go/pkg/credential"
	"github.com/getalts/getalts-go/pkg/errors"
)

// envToken is the environment variable overriding the stored token.
const envToken = "GETALTS_TOKEN"

// Config is the CLI configuration, read from
// ~/.config/getalts/config.toml when present. Every field is optional.
type Config struct {
	// BaseURL overrides the API endpoint.
	BaseURL string `toml:"base_url"`

	// Token authenticates requests. Usually the token lives in the
	// credential store instead; setting it here is for throwaway setups.
	Token string `toml:"token"`

	// Profile selects the credential profile when no --profile flag is
	// given.
	Profile string `toml:"profile"`

	// TimeoutSeconds bounds each API call.
	TimeoutSeconds int `toml:"timeout_seconds"`

	Retry RetryConfig `toml:"retry"`
	Cache CacheConfig `toml:"cache"`
}

// RetryConfig controls retries for transient API failures.
type RetryConfig struct {
	Attempts       int      `toml:"attempts"`
	DelaySeconds   int      `toml:"delay_seconds"`
	TransientCodes []string `toml:"transient_codes"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "memory", "redis", "mongo",
	// or "none".
	Backend string `toml:"backend"`

	TTLSeconds int `toml:"ttl_seconds"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI string `toml:"mongo_uri"`
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0 // client default
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (r *RetryConfig) delay() time.Duration {
	if r.DelaySeconds <= 0 {
		return time.Second
	}
	return time.Duration(r.DelaySeconds) * time.Second
}

func (c *CacheConfig) ttl() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0 // client default
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// configDir returns the config directory (~/.config/getalts/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// configPath returns the path of the config file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields an empty
// config, not an error.
func loadConfig() (*Config, error) {
	var cfg Config

	path, err := configPath()
	if err != nil {
		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &cfg, nil
}

// resolveToken finds the API token: environment variable first, then the
// config file, then the credential store.
func (c *CLI) resolveToken(ctx context.Context, cfg *Config) (string, error) {
	if token := os.Getenv(envToken); token != "" {
		return token, nil
	}
	if cfg.Token != "" {
		return cfg.Token, nil
	}

	profile := c.profile
	if profile == "" {
		profile = cfg.Profile
	}
	if profile == "" {
		profile = credential.DefaultProfile
	}

	store, err := credential.NewFileStore("")
	if err != nil {
		return "", fmt.Errorf("open credential store: %w", err)
	}
	cred, err := store.Get(ctx, profile)
	if err != nil {
		return "", fmt.Errorf("no API token found (run 'getalts auth login' or set %s): %w", envToken, err)
	}
	return cred.Token, nil
}

func configError(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
