// Package runner executes measurement passes and the validation workflow.
package runner

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// Fetcher performs one measurement request. Satisfied by fetcher.Client.
type Fetcher interface {
	Fetch(ctx context.Context, target models.URLConfig, run int) (models.MetricSample, error)
}

type Runner struct {
	fetcher Fetcher
	targets []models.URLConfig
	tracer  trace.Tracer
}

func New(f Fetcher, targets []models.URLConfig) *Runner {
	return &Runner{
		fetcher: f,
		targets: targets,
		tracer:  otel.Tracer("psi-testing-tool/runner"),
	}
}

func (r *Runner) Targets() []models.URLConfig {
	return r.targets
}

// RunPass fetches every configured target once, strictly sequentially, and
// returns the ordered sample set. A failed fetch is recorded as an error
// sample; it never aborts the pass.
func (r *Runner) RunPass(ctx context.Context, run int) (models.RunSet, error) {
	ctx, span := r.tracer.Start(ctx, "pass", trace.WithAttributes(
		attribute.Int("pass.run", run),
		attribute.Int("pass.targets", len(r.targets)),
	))
	defer span.End()

	set := make(models.RunSet, 0, len(r.targets))
	for _, target := range r.targets {
		if err := ctx.Err(); err != nil {
			return set, err
		}

		sample, err := r.fetcher.Fetch(ctx, target, run)
		if err != nil {
			slog.Warn("fetch failed",
				"url", target.URL,
				"strategy", target.Strategy,
				"run", run,
				"error", err,
			)
			sample = models.MetricSample{
				URL:       target.URL,
				Strategy:  target.Strategy,
				Timestamp: time.Now().UTC(),
				Run:       run,
				Err:       err.Error(),
			}
		} else {
			slog.Info("fetched",
				"url", target.URL,
				"strategy", target.Strategy,
				"run", run,
				"performance", sample.Performance,
				"cls", sample.CLS,
			)
		}
		set = append(set, sample)
	}
	return set, nil
}

// wait suspends between validation runs. It is the only blocking delay in the
// tool and exists to let the remote service's result caching expire.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
