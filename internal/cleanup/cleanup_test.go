package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneResultsRemovesOnlyAgedSnapshots(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "results-20250101-000000.json")
	fresh := filepath.Join(dir, "results-20260829-120000.json")
	unrelated := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, unrelated} {
		require.NoError(t, os.WriteFile(p, []byte("{}"), 0644))
	}
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(unrelated, past, past))

	PruneResults(dir, 24*time.Hour)

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
}

func TestPruneResultsMissingDirIsHarmless(t *testing.T) {
	PruneResults(filepath.Join(t.TempDir(), "nope"), time.Hour)
}
