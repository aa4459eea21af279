// Package cleanup prunes aged result snapshots from the results directory.
package cleanup

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PruneResults removes results-*.json files in dir older than maxAge. It is
// called after a pass's persistence step completed; failures are logged, not
// fatal, since losing old snapshots is preferable to failing a run.
func PruneResults(dir string, maxAge time.Duration) {
	now := time.Now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("failed to read results dir for cleanup", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "results-") || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(info.ModTime()) > maxAge {
			fullPath := filepath.Join(dir, entry.Name())
			if err := os.Remove(fullPath); err != nil {
				slog.Warn("failed to prune result snapshot", "path", fullPath, "error", err)
			} else {
				slog.Info("pruned result snapshot", "path", fullPath, "age", now.Sub(info.ModTime()).Round(time.Minute))
			}
		}
	}
}
