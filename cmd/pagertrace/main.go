package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pagertrace/pagertrace/internal/config"
	pterrors "github.com/pagertrace/pagertrace/internal/errors"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"

	cfgFile  string
	verbose  bool
	jsonMode bool
	logger   *logrus.Logger
	cfg      *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := pterrors.HintOf(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pagertrace",
	Short: "pagertrace - correlate PagerDuty incidents with code changes",
	Long: `pagertrace helps an on-call engineer understand why an incident happened.
It fetches an incident from PagerDuty, correlates it with commits made in the
lookback window before the incident, classifies the incident text, and emits
heuristic remediation guidance.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}

		if err := config.LoadDotEnv(); err != nil {
			logger.WithError(err).Warn("Failed to load .env file")
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.pagertrace/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonMode, "json", false, "machine-readable JSON output")

	rootCmd.SetVersionTemplate(`pagertrace {{.Version}}
Build time: ` + BuildTime + `
`)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(incidentsCmd)
	rootCmd.AddCommand(oncallCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
