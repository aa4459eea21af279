package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// StrategyMode selects which device classes each resolved URL is tested with.
type StrategyMode int

const (
	StrategyModeMobile StrategyMode = iota
	StrategyModeDesktop
	StrategyModeBoth
)

func (m StrategyMode) strategies() []models.Strategy {
	switch m {
	case StrategyModeDesktop:
		return []models.Strategy{models.StrategyDesktop}
	case StrategyModeBoth:
		return []models.Strategy{models.StrategyMobile, models.StrategyDesktop}
	default:
		return []models.Strategy{models.StrategyMobile}
	}
}

// ResolveTargets builds the URLConfig set for a session. CLI tokens take
// priority; the line-oriented list file is the fallback. With neither a
// ConfigError is returned before any network call happens.
func ResolveTargets(cliURLs []string, listPath string, mode StrategyMode) ([]models.URLConfig, error) {
	urls := cliURLs
	if len(urls) == 0 {
		fromFile, err := ReadURLList(listPath)
		if err != nil {
			return nil, err
		}
		urls = fromFile
	}
	if len(urls) == 0 {
		return nil, apperr.NewConfig(
			"no URLs to test",
			fmt.Sprintf("pass URLs as arguments or list them in %s", listPath),
		)
	}

	var targets []models.URLConfig
	for _, u := range urls {
		if _, err := url.ParseRequestURI(u); err != nil {
			return nil, apperr.NewConfigWrap(fmt.Sprintf("invalid URL %q", u), err)
		}
		for _, s := range mode.strategies() {
			targets = append(targets, models.URLConfig{
				Name:     displayName(u),
				URL:      u,
				Strategy: s,
			})
		}
	}
	return targets, nil
}

// ReadURLList reads a line-oriented URL list. Blank lines and lines starting
// with '#' are ignored; only http:// and https:// lines are accepted. A
// missing file yields an empty list, not an error, so CLI fallback ordering
// stays in the caller.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.NewConfigWrap(fmt.Sprintf("read URL list %s", path), err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.NewConfigWrap(fmt.Sprintf("read URL list %s", path), err)
	}
	return urls, nil
}

func displayName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	name := u.Host
	if p := strings.Trim(u.Path, "/"); p != "" {
		name += "/" + p
	}
	return name
}
