package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// Watch runs single passes continuously. The next pass is scheduled only
// after the current pass and its onPass step (rendering, persistence) fully
// complete, so passes never overlap. Returns when the context is canceled or
// onPass fails.
func (r *Runner) Watch(ctx context.Context, interval time.Duration, onPass func(models.RunSet) error) error {
	for run := 1; ; run++ {
		set, err := r.RunPass(ctx, run)
		if err != nil {
			return err
		}
		if err := onPass(set); err != nil {
			return err
		}

		slog.Info("watch pass complete", "run", run, "next_in", interval)
		if err := wait(ctx, interval); err != nil {
			return err
		}
	}
}
