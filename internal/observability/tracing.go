// Package observability sets up OpenTelemetry tracing for the API and CLI.
package observability

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/whoamaiii/kreativium/backend/internal/logger"
)

// TracingConfig controls span export
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	// Writer receives exported spans; nil means stdout.
	Writer io.Writer
}

// InitTracing installs a global tracer provider that exports spans as JSON.
// When tracing is disabled the global no-op provider stays in place. The
// returned shutdown flushes pending spans and is always safe to call.
func InitTracing(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "kreativium-api"
	}

	opts := []stdouttrace.Option{}
	if cfg.Writer != nil {
		opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
	} else {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return noop, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", cfg.Environment),
	))
	if err != nil {
		// schema URL conflicts are harmless here; keep the attributes
		logger.Ctx(ctx).Warn("otel resource merge failed (continuing)", logger.Err(err))
		res = resource.NewSchemaless(attribute.String("service.name", serviceName))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Ctx(ctx).Info("otel tracing initialized", logger.String("service", serviceName))
	return tp.Shutdown, nil
}
