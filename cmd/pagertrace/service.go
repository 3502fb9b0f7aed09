package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/errors"
	"github.com/pagertrace/pagertrace/internal/output"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

var (
	serviceDays   int
	serviceSince  string
	serviceOnCall bool
)

var serviceCmd = &cobra.Command{
	Use:   "service [service-name]",
	Short: "Aggregate recent incidents for a service",
	Long: `List a service's recent incidents and report status and urgency trends.
A service name that does not resolve yields an empty report, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runService,
}

func init() {
	serviceCmd.Flags().IntVar(&serviceDays, "days", 7, "number of days to look back")
	serviceCmd.Flags().StringVar(&serviceSince, "since", "", "look for incidents since this date (YYYY-MM-DD, overrides --days)")
	serviceCmd.Flags().BoolVar(&serviceOnCall, "oncall", false, "also show who is currently on call")
}

func runService(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	serviceName := args[0]

	if err := cfg.ResolveToken(); err != nil {
		return err
	}

	since := time.Now().UTC().Add(-time.Duration(serviceDays) * 24 * time.Hour)
	if serviceSince != "" {
		parsed, err := time.Parse("2006-01-02", serviceSince)
		if err != nil {
			return errors.InvalidInputf("invalid --since date %q, expected YYYY-MM-DD", serviceSince)
		}
		since = parsed
	}

	client := pagerduty.NewClient(cfg.PagerDuty.Token, cfg.PagerDuty.BaseURL, cfg.PagerDuty.RateLimit, logger)
	analyzer := analysis.NewAnalyzer(client, nil, analysis.DefaultRules(), 0, logger)

	// The incident listing and the on-call roster are independent
	// fetches; run them concurrently.
	var (
		report  *analysis.ServiceReport
		oncalls []pagerduty.OnCall
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, err = analyzer.AnalyzeService(gctx, serviceName, since)
		return err
	})
	if serviceOnCall {
		g.Go(func() error {
			var err error
			oncalls, err = client.ListOnCalls(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	formatter := output.NewFormatter(jsonMode)
	if err := formatter.ServiceReport(report, os.Stdout); err != nil {
		return err
	}
	if serviceOnCall {
		fmt.Fprintln(os.Stdout)
		return formatter.OnCallList(oncalls, os.Stdout)
	}
	return nil
}
