package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
	"github.com/amarghioali/psi-testing-tool/internal/models"
)

func writeURLList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadURLListFiltersLines(t *testing.T) {
	path := writeURLList(t, `
# production targets
https://example.com

http://staging.example.com
ftp://ignored.example.com
not a url
  https://indented.example.com
`)

	urls, err := ReadURLList(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com",
		"http://staging.example.com",
		"https://indented.example.com",
	}, urls)
}

func TestReadURLListMissingFileYieldsEmpty(t *testing.T) {
	urls, err := ReadURLList(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestResolveTargetsPrefersCLITokens(t *testing.T) {
	path := writeURLList(t, "https://from-file.example\n")

	targets, err := ResolveTargets([]string{"https://from-cli.example"}, path, StrategyModeMobile)
	require.NoError(t, err)

	require.Len(t, targets, 1)
	assert.Equal(t, "https://from-cli.example", targets[0].URL)
	assert.Equal(t, models.StrategyMobile, targets[0].Strategy)
}

func TestResolveTargetsFallsBackToFile(t *testing.T) {
	path := writeURLList(t, "https://from-file.example\n")

	targets, err := ResolveTargets(nil, path, StrategyModeDesktop)
	require.NoError(t, err)

	require.Len(t, targets, 1)
	assert.Equal(t, "https://from-file.example", targets[0].URL)
	assert.Equal(t, models.StrategyDesktop, targets[0].Strategy)
}

func TestResolveTargetsNoURLsIsConfigError(t *testing.T) {
	_, err := ResolveTargets(nil, filepath.Join(t.TempDir(), "nope.txt"), StrategyModeMobile)

	var cfgErr *apperr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestResolveTargetsBothExpandsStrategies(t *testing.T) {
	targets, err := ResolveTargets(
		[]string{"https://a.example", "https://b.example"},
		"",
		StrategyModeBoth,
	)
	require.NoError(t, err)

	// 2 URLs x {mobile, desktop} = 4 targets.
	require.Len(t, targets, 4)
	assert.Equal(t, models.StrategyMobile, targets[0].Strategy)
	assert.Equal(t, models.StrategyDesktop, targets[1].Strategy)
	assert.Equal(t, targets[0].URL, targets[1].URL)
	assert.Equal(t, "https://b.example", targets[2].URL)
}

func TestResolveTargetsRejectsInvalidURL(t *testing.T) {
	_, err := ResolveTargets([]string{"::not-a-url"}, "", StrategyModeMobile)

	var cfgErr *apperr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "example.com", displayName("https://example.com/"))
	assert.Equal(t, "example.com/pricing", displayName("https://example.com/pricing"))
}
