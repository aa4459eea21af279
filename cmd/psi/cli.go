package main

import (
	"flag"

	"github.com/amarghioali/psi-testing-tool/internal/config"
)

type cliConfig struct {
	ConfigPath string
	URLsPath   string
	Detailed   bool
	Watch      bool
	Validate   bool
	Desktop    bool
	Mobile     bool
	Both       bool
}

func parseFlags() (cliConfig, []string) {
	cfg := cliConfig{}

	flag.StringVar(&cfg.ConfigPath, "config", config.DefaultConfigPath, "Path to the YAML config document")
	flag.StringVar(&cfg.URLsPath, "urls", config.DefaultURLListPath, "Path to the line-oriented URL list file")
	flag.BoolVar(&cfg.Detailed, "detailed", false, "Capture top layout-shift contributing elements")
	flag.BoolVar(&cfg.Watch, "watch", false, "Re-run single passes continuously")
	flag.BoolVar(&cfg.Validate, "validate", false, "Run the multi-run validation workflow")
	flag.BoolVar(&cfg.Desktop, "desktop", false, "Test with the desktop strategy")
	flag.BoolVar(&cfg.Mobile, "mobile", false, "Test with the mobile strategy (default)")
	flag.BoolVar(&cfg.Both, "both", false, "Test each URL with both strategies")

	flag.Parse()
	return cfg, flag.Args()
}

// Strategy flags are mutually exclusive in effect: desktop wins over both,
// both wins over mobile, mobile is the default.
func (c cliConfig) strategyMode() config.StrategyMode {
	switch {
	case c.Desktop:
		return config.StrategyModeDesktop
	case c.Both:
		return config.StrategyModeBoth
	default:
		return config.StrategyModeMobile
	}
}
