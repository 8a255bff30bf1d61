// Package cli implements the getalts command-line interface.
//
// This package provides commands for checking balance and prices, buying
// activation numbers, driving activations through their lifecycle, and
// managing stored credentials and the response cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - balance: Show the account balance
//   - prices: Show prices per service or country
//   - numbers: Show how many numbers are in stock
//   - buy: Rent a number and optionally wait for its code
//   - activation: Inspect and transition an existing activation
//   - auth: Manage stored API tokens
//   - cache: Manage the response cache
//   - mock: Run a local mock API server
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/getalts/getalts-go/pkg/buildinfo"
	"github.com/getalts/getalts-go/pkg/cache"
	"github.com/getalts/getalts-go/pkg/getalts"
	"github.com/getalts/getalts-go/pkg/httputil"
)

// appName is the application name used for directories and display.
const appName = "getalts"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// persistent flags
	profile string
	baseURL string
	noCache bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "getalts",
		Short:        "Getalts rents phone numbers for account activations",
		Long:         `Getalts is a CLI for the GetAlts phone activation service: check prices and stock, rent numbers, and collect SMS verification codes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.profile, "profile", "", "credential profile to use")
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "override the API endpoint")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "bypass the response cache")

	root.AddCommand(c.balanceCommand())
	root.AddCommand(c.pricesCommand())
	root.AddCommand(c.numbersCommand())
	root.AddCommand(c.buyCommand())
	root.AddCommand(c.activationCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.mockCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient builds an API client from the resolved configuration.
// The caller must Close the returned client.
func (c *CLI) newClient(ctx context.Context) (*getalts.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	token, err := c.resolveToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	baseURL := c.baseURL
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}

	backend, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return getalts.New(getalts.Config{
		BaseURL:        baseURL,
		Token:          token,
		Timeout:        cfg.timeout(),
		Retry:          httputil.Policy{Attempts: cfg.Retry.Attempts, Delay: cfg.Retry.delay()},
		TransientCodes: cfg.Retry.TransientCodes,
		Cache:          backend,
		CacheTTL:       cfg.Cache.ttl(),
		Logger:         c.Logger,
	})
}

// newCache picks a cache backend from config, honoring --no-cache.
func (c *CLI) newCache(ctx context.Context, cfg *Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   appName + ":",
		})
	case "mongo":
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.Cache.MongoURI,
			Database: appName,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, configError("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/getalts/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
