package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/finchboard/tickerlane/internal/observability/logging"
)

// Config controls observability initialization.
type Config struct {
	ServiceInfo  logging.ServiceInfo
	Environment  logging.Environment
	LogLevel     slog.Level
	SamplingRate float64
}

// Resources holds the initialized providers so the caller can shut them
// down in order.
type Resources struct {
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Init sets up logging, tracing and metrics. Exporters are only wired when
// an OTLP endpoint is configured; without one the providers stay local so
// the service runs the same with or without a collector.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	logger := logging.NewLogger(cfg.LogLevel, cfg.ServiceInfo, cfg.Environment)

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceInfo.Name),
		attribute.String("service.version", cfg.ServiceInfo.Version),
		attribute.String("deployment.environment", string(cfg.Environment)),
	)

	obs := &Resources{logger: logger}

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	traceOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SamplingRate)),
	}
	if endpoint != "" {
		traceExporter, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))
	}
	obs.tracerProvider = sdktrace.NewTracerProvider(traceOpts...)
	otel.SetTracerProvider(obs.tracerProvider)

	metricOpts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	if endpoint != "" {
		metricExporter, err := otlpmetrichttp.New(ctx)
		if err != nil {
			return nil, err
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second)),
		))
	}
	obs.meterProvider = sdkmetric.NewMeterProvider(metricOpts...)
	otel.SetMeterProvider(obs.meterProvider)

	return obs, nil
}

// Logger returns the configured service logger.
func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

// Shutdown flushes and stops the telemetry providers.
func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
