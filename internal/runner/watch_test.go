package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

func TestWatchRunsUntilCanceled(t *testing.T) {
	f := &fakeFetcher{
		cls:  map[string][]float64{"https://example.com": {0.01, 0.01, 0.01}},
		perf: map[string][]int{"https://example.com": {95, 95, 95}},
	}
	r := New(f, []models.URLConfig{mobileTarget("https://example.com")})

	ctx, cancel := context.WithCancel(context.Background())

	var passes int
	err := r.Watch(ctx, 0, func(set models.RunSet) error {
		passes++
		require.Len(t, set, 1)
		if passes == 2 {
			cancel()
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, passes)
}

func TestWatchStopsWhenOnPassFails(t *testing.T) {
	f := &fakeFetcher{
		cls:  map[string][]float64{"https://example.com": {0.01}},
		perf: map[string][]int{"https://example.com": {95}},
	}
	r := New(f, []models.URLConfig{mobileTarget("https://example.com")})

	sentinel := errors.New("persist failed")
	err := r.Watch(context.Background(), 0, func(models.RunSet) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
}
