// Package config loads the YAML configuration document and resolves the set
// of measurement targets.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// PlaceholderAPIKey is the literal shipped in the sample config; it is
// rejected the same as a missing key.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

const (
	DefaultConfigPath   = "psi-config.yml"
	DefaultURLListPath  = "urls.txt"
	DefaultResultsDir   = "results"
	DefaultRuns         = 3
	DefaultIntervalSecs = 45
	DefaultTimeoutSecs  = 60
	DefaultWatchSecs    = 60
)

type Validation struct {
	Runs            int  `yaml:"runs"`
	IntervalSeconds int  `yaml:"intervalSeconds"`
	RequireAllPass  bool `yaml:"requireAllPass"`
	// AggregateByURLOnly restores the legacy behavior of merging mobile and
	// desktop samples for the same URL into one bucket.
	AggregateByURLOnly bool `yaml:"aggregateByUrlOnly"`
}

type Options struct {
	Detailed              bool   `yaml:"detailed"`
	SaveResults           bool   `yaml:"saveResults"`
	ResultsDir            string `yaml:"resultsDir"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	WatchIntervalSeconds  int    `yaml:"watchIntervalSeconds"`
	// KeepResultsDays prunes saved snapshots older than this many days after
	// each pass. Zero keeps everything.
	KeepResultsDays int `yaml:"keepResultsDays"`
	// HistoryDB enables the sqlite run-history database when set to a path.
	HistoryDB string `yaml:"historyDb"`
}

type Config struct {
	APIKey     string            `yaml:"apiKey"`
	Thresholds models.Thresholds `yaml:"thresholds"`
	Validation Validation        `yaml:"validation"`
	Options    Options           `yaml:"options"`
}

// Load reads the config document from path, applies defaults and env
// overrides, and validates the API key. A .env file next to the working
// directory is honored when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.NewConfigWrap(fmt.Sprintf("read config %s", path), err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if key := os.Getenv("PSI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a config document and applies defaults. It does not validate
// the API key so that tests and callers with env overrides can finish setup
// first.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		Validation: Validation{
			Runs:            DefaultRuns,
			IntervalSeconds: DefaultIntervalSecs,
			RequireAllPass:  true,
		},
		Options: Options{
			ResultsDir:            DefaultResultsDir,
			RequestTimeoutSeconds: DefaultTimeoutSecs,
			WatchIntervalSeconds:  DefaultWatchSecs,
		},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperr.NewConfigWrap("parse config YAML", err)
	}

	if cfg.Validation.Runs <= 0 {
		cfg.Validation.Runs = DefaultRuns
	}
	if cfg.Validation.IntervalSeconds < 0 {
		cfg.Validation.IntervalSeconds = DefaultIntervalSecs
	}
	if cfg.Options.ResultsDir == "" {
		cfg.Options.ResultsDir = DefaultResultsDir
	}
	if cfg.Options.RequestTimeoutSeconds <= 0 {
		cfg.Options.RequestTimeoutSeconds = DefaultTimeoutSecs
	}
	if cfg.Options.WatchIntervalSeconds <= 0 {
		cfg.Options.WatchIntervalSeconds = DefaultWatchSecs
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" || c.APIKey == PlaceholderAPIKey {
		return apperr.NewConfig(
			"missing PageSpeed Insights API key",
			"set apiKey in the config file or export PSI_API_KEY",
		)
	}
	if c.Thresholds.CLS <= 0 || c.Thresholds.Performance <= 0 {
		return apperr.NewConfig(
			"thresholds must be positive",
			"set thresholds.cls and thresholds.performance in the config file",
		)
	}
	return nil
}
