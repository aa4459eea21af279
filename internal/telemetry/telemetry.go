// Package telemetry wires optional error reporting and trace export. Both are
// off unless configured through the environment, so the CLI stays dependency
// free at runtime by default.
package telemetry

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "psi-testing-tool"

// Init configures sentry (SENTRY_DSN) and OTLP trace export
// (OTEL_EXPORTER_OTLP_ENDPOINT) when their environment variables are present.
// The returned shutdown flushes both and must run before process exit.
func Init(ctx context.Context) (func(context.Context), error) {
	var shutdowns []func(context.Context)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     dsn,
			Release: serviceName,
		})
		if err != nil {
			return nil, err
		}
		slog.Debug("sentry error reporting enabled")
		shutdowns = append(shutdowns, func(context.Context) {
			sentry.Flush(2 * time.Second)
		})
	}

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		exporter, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", serviceName),
			)),
		)
		otel.SetTracerProvider(tp)
		slog.Debug("OTLP trace export enabled", "endpoint", endpoint)
		shutdowns = append(shutdowns, func(ctx context.Context) {
			if err := tp.Shutdown(ctx); err != nil {
				slog.Warn("trace provider shutdown failed", "error", err)
			}
		})
	}

	return func(ctx context.Context) {
		for _, fn := range shutdowns {
			fn(ctx)
		}
	}, nil
}

// CaptureError forwards err to sentry when reporting is enabled.
func CaptureError(err error) {
	if sentry.CurrentHub().Client() != nil {
		sentry.CaptureException(err)
	}
}
