package ports

import "context"

// MetricsExporter exports application metrics to an external
// observability system.
type MetricsExporter interface {
	// LectureOperation records one data-layer operation (list, get,
	// create, update, delete) and whether it failed.
	LectureOperation(ctx context.Context, op string, failed bool)
	// CacheHit, CacheMiss and CacheInvalidation record query-cache
	// events for the given scope.
	CacheHit(ctx context.Context, scope string)
	CacheMiss(ctx context.Context, scope string)
	CacheInvalidation(ctx context.Context, scope string)
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
