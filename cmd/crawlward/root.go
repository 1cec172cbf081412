package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crawlward/crawlward/internal/cache"
	"github.com/crawlward/crawlward/internal/config"
	"github.com/crawlward/crawlward/internal/fetcher"
	"github.com/crawlward/crawlward/internal/gate"
	"github.com/crawlward/crawlward/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "crawlward",
	Short: "Robots-exclusion policy checker for crawlers",
	Long: `Crawlward parses robots.txt policies and answers whether a
user-agent may fetch a URL. It can check URLs one-off or run as an
enforcing forward proxy in front of an existing crawler.

Example:
  crawlward check --agent mybot https://example.com/search
  crawlward proxy`,
	Version:               "0.1.0",
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.crawlward/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// setup loads configuration and builds the logger shared by
// subcommands. An absent default config file falls back to built-in
// defaults; an explicit --config that cannot be read is an error.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if cfgFile != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, nil, err
		}
		cfg = config.Default()
	}
	return cfg, logging.Setup(logLevel), nil
}

// buildGate wires the fetcher, cache and skip list for the given
// crawler agent. An empty agent uses the configured fetch identity.
func buildGate(cfg *config.Config, agent string) (*gate.Gate, error) {
	if agent == "" {
		agent = cfg.Fetch.UserAgent
	}
	f := fetcher.New(cfg.Fetch.UserAgent, cfg.Timeout())
	c := cache.New(cfg.TTL(), f.Fetch)
	return gate.New(agent, cfg.Policy.SkipHosts, c)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
