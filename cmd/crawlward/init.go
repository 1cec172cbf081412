package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Creates a default configuration file at ~/.crawlward/config.yaml.

The defaults identify the crawler as crawlward/0.1, cache fetched
policies for an hour, and run the enforcing proxy on localhost.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const defaultConfig = `# Crawlward configuration

fetch:
  # How crawlward identifies itself when retrieving robots.txt. Also
  # the default agent that check/proxy evaluate policies for.
  user_agent: "crawlward/0.1"
  timeout_seconds: 30

cache:
  # How long a fetched policy stays fresh. 0 keeps policies for the
  # life of the process.
  ttl_minutes: 60

policy:
  # Hosts exempt from robots checking (glob patterns).
  skip_hosts:
    - "localhost"
    - "127.0.0.1"
    # - "*.internal"

proxy:
  listen: "127.0.0.1:8571"
`

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, ".crawlward")
	configPath := filepath.Join(configDir, "config.yaml")

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	// Create directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write config file
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Created config at %s\n", configPath)
	return nil
}
