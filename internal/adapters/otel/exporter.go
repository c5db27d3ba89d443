// Package otel exports application metrics to an OTEL Collector over
// OTLP gRPC.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"lectern/internal/ports"
)

const (
	serviceName    = "lectern"
	serviceVersion = "1.0.0"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// Exporter implements ports.MetricsExporter against an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	meter         metric.Meter
	operations    metric.Int64Counter
	cacheEvents   metric.Int64Counter
	invalidations metric.Int64Counter
}

var _ ports.MetricsExporter = (*Exporter)(nil)

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	operations, err := meter.Int64Counter(
		"lectern_lecture_operations_total",
		metric.WithDescription("Lecture data-layer operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operations counter: %w", err)
	}

	cacheEvents, err := meter.Int64Counter(
		"lectern_query_cache_events_total",
		metric.WithDescription("Query cache hits and misses"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache events counter: %w", err)
	}

	invalidations, err := meter.Int64Counter(
		"lectern_query_cache_invalidations_total",
		metric.WithDescription("Query cache invalidations"),
		metric.WithUnit("{invalidation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating invalidations counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		meter:         meter,
		operations:    operations,
		cacheEvents:   cacheEvents,
		invalidations: invalidations,
	}, nil
}

func (e *Exporter) LectureOperation(ctx context.Context, op string, failed bool) {
	e.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("failed", failed),
	))
}

func (e *Exporter) CacheHit(ctx context.Context, scope string) {
	e.cacheEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("result", "hit"),
	))
}

func (e *Exporter) CacheMiss(ctx context.Context, scope string) {
	e.cacheEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("result", "miss"),
	))
}

func (e *Exporter) CacheInvalidation(ctx context.Context, scope string) {
	e.invalidations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
	))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
