package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkAgent string
	showPolicy bool
)

var checkCmd = &cobra.Command{
	Use:   "check URL...",
	Short: "Check whether URLs may be fetched",
	Long: `Fetches the robots.txt governing each URL and reports whether the
given user-agent is permitted to fetch it. Exits nonzero if any URL is
disallowed, so the command composes with shell pipelines.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkAgent, "agent", "", "user-agent to check as (default: configured fetch.user_agent)")
	checkCmd.Flags().BoolVar(&showPolicy, "show-policy", false, "print the parsed policy for each checked site")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	g, err := buildGate(cfg, checkAgent)
	if err != nil {
		return err
	}

	denied := false
	for _, raw := range args {
		d := g.Check(cmd.Context(), raw)
		verdict := "allow"
		if !d.Allowed {
			verdict = "deny"
			denied = true
		}
		fmt.Printf("%-5s %s  (%s)\n", verdict, raw, d.Reason)
		logger.Debug("checked", "url", raw, "allowed", d.Allowed, "reason", d.Reason)

		if showPolicy {
			if p, ok := g.Policy(raw); ok {
				fmt.Print(p.String())
			}
		}
	}

	if denied {
		return fmt.Errorf("one or more URLs are disallowed")
	}
	return nil
}
