package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
)

func TestConfigErrorWrapping(t *testing.T) {
	inner := fmt.Errorf("open failed")
	err := apperr.NewConfigWrap("read config", inner)

	if err.Error() != "read config: open failed" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to reach the inner error")
	}
}

func TestConfigErrorSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("startup: %w", apperr.NewConfig("no URLs to test", "pass URLs as arguments"))

	var cfgErr *apperr.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatal("expected errors.As to find ConfigError")
	}
	if cfgErr.Hint != "pass URLs as arguments" {
		t.Errorf("unexpected hint %q", cfgErr.Hint)
	}
}

func TestRemoteErrorMessage(t *testing.T) {
	err := &apperr.RemoteError{URL: "https://example.com", Code: 429, Message: "quota exceeded"}
	want := "remote error for https://example.com (code 429): quota exceeded"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
