package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
	"github.com/amarghioali/psi-testing-tool/internal/cleanup"
	"github.com/amarghioali/psi-testing-tool/internal/config"
	"github.com/amarghioali/psi-testing-tool/internal/fetcher"
	"github.com/amarghioali/psi-testing-tool/internal/history"
	"github.com/amarghioali/psi-testing-tool/internal/models"
	"github.com/amarghioali/psi-testing-tool/internal/report"
	"github.com/amarghioali/psi-testing-tool/internal/runner"
	"github.com/amarghioali/psi-testing-tool/internal/storage"
	"github.com/amarghioali/psi-testing-tool/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cli, urlArgs := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		return 1
	}
	defer shutdown(context.Background())

	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		return failConfig(err)
	}

	targets, err := config.ResolveTargets(urlArgs, cli.URLsPath, cli.strategyMode())
	if err != nil {
		return failConfig(err)
	}

	detailed := cli.Detailed || cfg.Options.Detailed

	client := fetcher.New(fetcher.ClientConfig{
		APIKey:   cfg.APIKey,
		Timeout:  time.Duration(cfg.Options.RequestTimeoutSeconds) * time.Second,
		Detailed: detailed,
	})
	r := runner.New(client, targets)

	app := &app{cli: cli, cfg: cfg, runner: r, detailed: detailed}

	switch {
	case cli.Validate:
		return app.validate(ctx)
	case cli.Watch:
		return app.watch(ctx)
	default:
		return app.single(ctx)
	}
}

type app struct {
	cli      cliConfig
	cfg      *config.Config
	runner   *runner.Runner
	detailed bool
}

func (a *app) single(ctx context.Context) int {
	set, err := a.runner.RunPass(ctx, 1)
	if err != nil {
		slog.Error("pass aborted", "error", err)
		return 1
	}

	report.WriteSamples(os.Stdout, set, a.cfg.Thresholds, a.detailed)

	if a.cfg.Options.SaveResults {
		if err := a.persist(ctx, set); err != nil {
			slog.Error("failed to save results", "error", err)
			telemetry.CaptureError(err)
			return 1
		}
	}
	return 0
}

func (a *app) watch(ctx context.Context) int {
	interval := time.Duration(a.cfg.Options.WatchIntervalSeconds) * time.Second

	err := a.runner.Watch(ctx, interval, func(set models.RunSet) error {
		report.WriteSamples(os.Stdout, set, a.cfg.Thresholds, a.detailed)
		if a.cfg.Options.SaveResults {
			return a.persist(ctx, set)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("watch aborted", "error", err)
		telemetry.CaptureError(err)
		return 1
	}

	slog.Info("watch stopped")
	return 0
}

func (a *app) validate(ctx context.Context) int {
	result, err := a.runner.Validate(ctx, runner.ValidateConfig{
		Runs:       a.cfg.Validation.Runs,
		Interval:   time.Duration(a.cfg.Validation.IntervalSeconds) * time.Second,
		Thresholds: a.cfg.Thresholds,
		ByURLOnly:  a.cfg.Validation.AggregateByURLOnly,
	})
	if err != nil {
		slog.Error("validation aborted", "error", err)
		return 1
	}

	report.WriteValidation(os.Stdout, result.Summary)

	if a.cfg.Options.HistoryDB != "" {
		if err := a.recordHistory(result.Summary); err != nil {
			slog.Error("failed to record run history", "error", err)
			telemetry.CaptureError(err)
			return 1
		}
	}

	if a.cfg.Validation.RequireAllPass && !result.Summary.AllPassed {
		return 1
	}
	return 0
}

// persist writes the JSON snapshot locally, uploads it to S3 when the sink is
// configured, and prunes aged snapshots when retention is set.
func (a *app) persist(ctx context.Context, set models.RunSet) error {
	doc := report.BuildDocument(set, a.cfg.Thresholds, a.runner.Targets())

	path, err := report.Save(doc, a.cfg.Options.ResultsDir)
	if err != nil {
		return err
	}
	slog.Info("results saved", "path", path)

	if storage.Configured() {
		svc, err := storage.NewService(ctx)
		if err != nil {
			return fmt.Errorf("initialize S3 sink: %w", err)
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		key := "results/" + filepath.Base(path)
		if err := svc.UploadDocument(ctx, key, data); err != nil {
			return fmt.Errorf("upload snapshot to S3: %w", err)
		}
		slog.Info("results uploaded", "key", key)
	}

	if a.cfg.Options.KeepResultsDays > 0 {
		cleanup.PruneResults(a.cfg.Options.ResultsDir, time.Duration(a.cfg.Options.KeepResultsDays)*24*time.Hour)
	}
	return nil
}

func (a *app) recordHistory(summary *models.ValidationSummary) error {
	store, err := history.Open(a.cfg.Options.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordSummary(summary)
}

func failConfig(err error) int {
	var cfgErr *apperr.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Hint != "" {
		slog.Error("configuration error", "error", err, "hint", cfgErr.Hint)
	} else {
		slog.Error("configuration error", "error", err)
	}
	telemetry.CaptureError(err)
	return 1
}
