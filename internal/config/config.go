package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pagertrace/pagertrace/internal/errors"
)

// Config holds all settings for one run. It is built once at process
// start and passed into constructors; nothing reads the environment
// mid-pipeline.
type Config struct {
	PagerDuty PagerDutyConfig `mapstructure:"pagerduty"`
	Git       GitConfig       `mapstructure:"git"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
}

type PagerDutyConfig struct {
	Token     string `mapstructure:"token"`
	BaseURL   string `mapstructure:"base_url"`
	RateLimit int    `mapstructure:"rate_limit"` // requests per second
}

type GitConfig struct {
	RepoPath string `mapstructure:"repo_path"`
}

type AnalysisConfig struct {
	LookbackHours int    `mapstructure:"lookback_hours"`
	RulesFile     string `mapstructure:"rules_file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		PagerDuty: PagerDutyConfig{
			BaseURL:   "https://api.pagerduty.com",
			RateLimit: 10,
		},
		Git: GitConfig{
			RepoPath: ".",
		},
		Analysis: AnalysisConfig{
			LookbackHours: 24,
		},
	}
}

// Load reads configuration from an optional YAML file (default
// ~/.pagertrace/config.yaml), layered over defaults. The API token is
// never stored in the file; it is resolved separately via ResolveToken.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".pagertrace"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	cfg := Default()
	v.SetDefault("pagerduty.base_url", cfg.PagerDuty.BaseURL)
	v.SetDefault("pagerduty.rate_limit", cfg.PagerDuty.RateLimit)
	v.SetDefault("git.repo_path", cfg.Git.RepoPath)
	v.SetDefault("analysis.lookback_hours", cfg.Analysis.LookbackHours)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Missing config file is fine; defaults apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// TokenEnvVar is the environment variable carrying the PagerDuty API token.
const TokenEnvVar = "PAGERDUTY_API_TOKEN"

// ResolveToken finds the API token: environment (including a discovered
// .env file loaded beforehand), then the OS keychain. Returns a
// MissingCredential error when neither source has it, before any
// network call is made.
func (c *Config) ResolveToken() error {
	if token := os.Getenv(TokenEnvVar); token != "" {
		c.PagerDuty.Token = token
		return nil
	}

	token, err := KeychainToken()
	if err == nil && token != "" {
		c.PagerDuty.Token = token
		return nil
	}

	return errors.MissingCredential(TokenEnvVar + " is not set").
		WithHint("export " + TokenEnvVar + "=<your token>, add it to .env, or run 'pagertrace login'")
}
