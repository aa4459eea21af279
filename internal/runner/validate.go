package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

type ValidateConfig struct {
	Runs       int
	Interval   time.Duration
	Thresholds models.Thresholds
	// ByURLOnly merges mobile and desktop samples for the same URL into one
	// aggregation bucket (legacy behavior).
	ByURLOnly bool
}

// ValidationResult carries the aggregated summary plus the raw per-run sample
// sets for reporting.
type ValidationResult struct {
	Runs    []models.RunSet
	Summary *models.ValidationSummary
}

// Validate executes the repeated-measurement workflow: N sequential passes
// with a wait between consecutive runs (never before the first), then one
// aggregation over everything collected. Failed runs do not shorten the
// session; the repetition is unconditional.
func (r *Runner) Validate(ctx context.Context, cfg ValidateConfig) (*ValidationResult, error) {
	result := &ValidationResult{}

	for run := 1; run <= cfg.Runs; run++ {
		if run > 1 {
			slog.Info("waiting before next run", "interval", cfg.Interval)
			if err := wait(ctx, cfg.Interval); err != nil {
				return nil, err
			}
		}

		slog.Info("starting run", "run", run, "total", cfg.Runs)
		set, err := r.RunPass(ctx, run)
		if err != nil {
			return nil, err
		}
		result.Runs = append(result.Runs, set)
	}

	result.Summary = Aggregate(result.Runs, r.targets, cfg.Thresholds, cfg.ByURLOnly)
	return result, nil
}
