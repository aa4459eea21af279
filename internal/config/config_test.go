package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
)

const validConfig = `
apiKey: real-key
thresholds:
  cls: 0.1
  lcp: 2500
  fid: 100
  performance: 90
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "psi-config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, DefaultRuns, cfg.Validation.Runs)
	assert.Equal(t, DefaultIntervalSecs, cfg.Validation.IntervalSeconds)
	assert.True(t, cfg.Validation.RequireAllPass)
	assert.False(t, cfg.Validation.AggregateByURLOnly)
	assert.Equal(t, DefaultResultsDir, cfg.Options.ResultsDir)
	assert.Equal(t, DefaultTimeoutSecs, cfg.Options.RequestTimeoutSeconds)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validConfig + `
validation:
  runs: 5
  intervalSeconds: 10
  requireAllPass: false
  aggregateByUrlOnly: true
options:
  saveResults: true
  resultsDir: out
  requestTimeoutSeconds: 30
`))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Validation.Runs)
	assert.Equal(t, 10, cfg.Validation.IntervalSeconds)
	assert.False(t, cfg.Validation.RequireAllPass)
	assert.True(t, cfg.Validation.AggregateByURLOnly)
	assert.True(t, cfg.Options.SaveResults)
	assert.Equal(t, "out", cfg.Options.ResultsDir)
	assert.Equal(t, 30, cfg.Options.RequestTimeoutSeconds)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("apiKey: [unclosed"))

	var cfgErr *apperr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("PSI_API_KEY", "")
	path := writeConfig(t, `
thresholds:
  cls: 0.1
  performance: 90
`)

	_, err := Load(path)

	var cfgErr *apperr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Hint, "PSI_API_KEY")
}

func TestLoadRejectsPlaceholderAPIKey(t *testing.T) {
	t.Setenv("PSI_API_KEY", "")
	path := writeConfig(t, `
apiKey: YOUR_API_KEY_HERE
thresholds:
  cls: 0.1
  performance: 90
`)

	_, err := Load(path)

	var cfgErr *apperr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("PSI_API_KEY", "from-env")
	path := writeConfig(t, `
apiKey: YOUR_API_KEY_HERE
thresholds:
  cls: 0.1
  lcp: 2500
  fid: 100
  performance: 90
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadMissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	var cfgErr *apperr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
