package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// BuildDocument assembles the persisted snapshot for one pass. The API key is
// deliberately not part of the configuration snapshot.
func BuildDocument(set models.RunSet, th models.Thresholds, targets []models.URLConfig) models.ResultDocument {
	doc := models.ResultDocument{
		Timestamp: time.Now().UTC(),
		Config: models.ResultConfig{
			Thresholds: th,
		},
		Results: set,
	}
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if seen[t.URL] {
			continue
		}
		seen[t.URL] = true
		doc.Config.URLs = append(doc.Config.URLs, models.NamedURL{Name: t.Name, URL: t.URL})
	}
	return doc
}

// Save writes the document under dir, creating the directory if absent. The
// filename embeds a filesystem-safe timestamp. Returns the written path.
func Save(doc models.ResultDocument, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create results dir %s: %w", dir, err)
	}

	name := fmt.Sprintf("results-%s.json", doc.Timestamp.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write result document: %w", err)
	}
	return path, nil
}
