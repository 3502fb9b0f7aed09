package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagertrace/pagertrace/internal/output"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

var oncallCmd = &cobra.Command{
	Use:   "oncall",
	Short: "Show who is currently on call",
	Long:  `Show the current on-call roster, grouped by escalation policy and level.`,
	Args:  cobra.NoArgs,
	RunE:  runOnCall,
}

func runOnCall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := cfg.ResolveToken(); err != nil {
		return err
	}

	client := pagerduty.NewClient(cfg.PagerDuty.Token, cfg.PagerDuty.BaseURL, cfg.PagerDuty.RateLimit, logger)
	oncalls, err := client.ListOnCalls(ctx)
	if err != nil {
		return err
	}

	return output.NewFormatter(jsonMode).OnCallList(oncalls, os.Stdout)
}
