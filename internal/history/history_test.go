package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndReadBack(t *testing.T) {
	store := openTestStore(t)

	summary := &models.ValidationSummary{
		Buckets: []models.BucketSummary{
			{
				URL: "https://example.com", Strategy: models.StrategyMobile,
				Runs: 3, Successes: 3,
				CLS:         models.MetricStats{Min: 0.02, Avg: 0.04, Max: 0.09},
				Performance: models.MetricStats{Min: 90, Avg: 92, Max: 95},
				Passed:      true,
			},
			{
				URL: "https://example.com", Strategy: models.StrategyDesktop,
				Runs: 3, Successes: 2, Failures: 1,
				CLS:         models.MetricStats{Min: 0.05, Avg: 0.1, Max: 0.15},
				Performance: models.MetricStats{Min: 80, Avg: 85, Max: 88},
				Passed:      false,
			},
		},
	}
	require.NoError(t, store.RecordSummary(summary))

	rows, err := store.Recent("https://example.com", 10)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	for _, b := range rows {
		assert.Equal(t, "https://example.com", b.URL)
		assert.Equal(t, 3, b.Runs)
	}
}

func TestRecentUnknownURLIsEmpty(t *testing.T) {
	store := openTestStore(t)

	rows, err := store.Recent("https://nope.example", 5)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordSummarySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordSummary(&models.ValidationSummary{
		Buckets: []models.BucketSummary{{URL: "https://example.com", Strategy: models.StrategyMobile, Runs: 1, Successes: 1, Passed: true}},
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.Recent("https://example.com", 5)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.True(t, rows[0].Passed)
}
