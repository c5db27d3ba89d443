package otel

import (
	"context"

	"lectern/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

var _ ports.MetricsExporter = (*NoOpExporter)(nil)

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) LectureOperation(ctx context.Context, op string, failed bool) {}

func (e *NoOpExporter) CacheHit(ctx context.Context, scope string) {}

func (e *NoOpExporter) CacheMiss(ctx context.Context, scope string) {}

func (e *NoOpExporter) CacheInvalidation(ctx context.Context, scope string) {}

func (e *NoOpExporter) Close(ctx context.Context) error { return nil }
