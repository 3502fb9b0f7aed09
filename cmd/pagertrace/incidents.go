package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/output"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

var incidentsCmd = &cobra.Command{
	Use:   "incidents",
	Short: "List currently open incidents",
	Long:  `List all triggered and acknowledged incidents across services.`,
	Args:  cobra.NoArgs,
	RunE:  runIncidents,
}

func runIncidents(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := cfg.ResolveToken(); err != nil {
		return err
	}

	client := pagerduty.NewClient(cfg.PagerDuty.Token, cfg.PagerDuty.BaseURL, cfg.PagerDuty.RateLimit, logger)
	incidents, err := client.ListIncidents(ctx, analysis.ListFilter{})
	if err != nil {
		return err
	}

	return output.NewFormatter(jsonMode).IncidentList(incidents, os.Stdout)
}
