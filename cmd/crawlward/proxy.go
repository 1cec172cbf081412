package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crawlward/crawlward/internal/proxy"
)

var proxyAgent string

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run a robots-enforcing forward proxy",
	Long: `Starts an HTTP forward proxy that refuses requests disallowed by the
target site's robots.txt. Point a crawler's HTTP_PROXY at it to add
enforcement without modifying the crawler.`,
	RunE: runProxy,
}

func init() {
	proxyCmd.Flags().StringVar(&proxyAgent, "agent", "", "user-agent to enforce for (default: configured fetch.user_agent)")
	rootCmd.AddCommand(proxyCmd)
}

func runProxy(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	g, err := buildGate(cfg, proxyAgent)
	if err != nil {
		return err
	}

	p, err := proxy.New(g, cfg.Proxy.Listen, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return p.Start(ctx)
}
