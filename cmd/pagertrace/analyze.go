package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/pagertrace/pagertrace/internal/analysis"
	"github.com/pagertrace/pagertrace/internal/gitlog"
	"github.com/pagertrace/pagertrace/internal/output"
	"github.com/pagertrace/pagertrace/internal/pagerduty"
)

var (
	analyzeRepo     string
	analyzeLookback int
	analyzeGitHub   string
	analyzeRules    string
	analyzeOpen     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [incident-id]",
	Short: "Analyze one incident against recent code changes",
	Long: `Fetch an incident, compute its lookback window, gather the commits made
inside that window, classify the incident text, and print remediation guidance.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRepo, "repo", "", "path to the git working copy (default: config repo_path)")
	analyzeCmd.Flags().IntVar(&analyzeLookback, "lookback-hours", 0, "lookback window in hours (default: config lookback_hours)")
	analyzeCmd.Flags().StringVar(&analyzeGitHub, "github", "", "read change history from GitHub instead of a local repo (owner/repo)")
	analyzeCmd.Flags().StringVar(&analyzeRules, "rules", "", "YAML file replacing the built-in classification rules")
	analyzeCmd.Flags().BoolVar(&analyzeOpen, "open", false, "open the incident in the browser")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	incidentID := args[0]

	if err := cfg.ResolveToken(); err != nil {
		return err
	}

	changes, err := newChangeSource()
	if err != nil {
		return err
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}

	lookbackHours := analyzeLookback
	if lookbackHours <= 0 {
		lookbackHours = cfg.Analysis.LookbackHours
	}

	incidents := pagerduty.NewClient(cfg.PagerDuty.Token, cfg.PagerDuty.BaseURL, cfg.PagerDuty.RateLimit, logger)
	analyzer := analysis.NewAnalyzer(incidents, changes, rules,
		time.Duration(lookbackHours)*time.Hour, logger)

	report, err := analyzer.AnalyzeIncident(ctx, incidentID)
	if err != nil {
		return err
	}

	if analyzeOpen && report.Incident.HTMLURL != "" {
		if err := browser.OpenURL(report.Incident.HTMLURL); err != nil {
			logger.WithError(err).Warn("Failed to open browser")
		}
	}

	return output.NewFormatter(jsonMode).IncidentReport(report, os.Stdout)
}

// newChangeSource picks the change backend: the GitHub API when
// --github is set, otherwise git log against the local working copy.
func newChangeSource() (analysis.ChangeSource, error) {
	if analyzeGitHub != "" {
		return gitlog.NewGitHubSource(analyzeGitHub, os.Getenv("GITHUB_TOKEN"))
	}
	repoPath := analyzeRepo
	if repoPath == "" {
		repoPath = cfg.Git.RepoPath
	}
	return gitlog.NewLocalSource(repoPath, logger), nil
}

func loadRules() (analysis.RuleSet, error) {
	rulesFile := analyzeRules
	if rulesFile == "" {
		rulesFile = cfg.Analysis.RulesFile
	}
	if rulesFile == "" {
		return analysis.DefaultRules(), nil
	}
	return analysis.LoadRules(rulesFile)
}
