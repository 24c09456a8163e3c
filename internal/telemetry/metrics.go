package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter     metric.Int64Counter
	RequestDuration    metric.Float64Histogram
	SearchesByStrategy metric.Int64Counter
	SearchDuration     metric.Float64Histogram
	TrendingCacheOps   metric.Int64Counter
	EmbeddingFailures  metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("tastory-backend")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	searchesByStrategy, err := meter.Int64Counter(
		"search.strategy.results",
		metric.WithDescription("Searches resolved, labeled by winning retrieval strategy"),
	)
	if err != nil {
		return nil, err
	}

	searchDuration, err := meter.Float64Histogram(
		"search.duration",
		metric.WithDescription("End-to-end retrieval duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	trendingCacheOps, err := meter.Int64Counter(
		"trending.cache.operations",
		metric.WithDescription("Trending cache hits and misses"),
	)
	if err != nil {
		return nil, err
	}

	embeddingFailures, err := meter.Int64Counter(
		"embeddings.failures.total",
		metric.WithDescription("Embedding provider failures"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:     requestCounter,
		RequestDuration:    requestDuration,
		SearchesByStrategy: searchesByStrategy,
		SearchDuration:     searchDuration,
		TrendingCacheOps:   trendingCacheOps,
		EmbeddingFailures:  embeddingFailures,
	}, nil
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", status),
	}

	m.RequestCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordSearch records which strategy produced the final candidate set.
func (m *Metrics) RecordSearch(strategy string, resultCount int, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("search.strategy", strategy),
		attribute.Bool("search.empty", resultCount == 0),
	}

	m.SearchesByStrategy.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.SearchDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordTrendingCache records a trending cache hit or miss.
func (m *Metrics) RecordTrendingCache(outcome string) {
	m.TrendingCacheOps.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("cache.outcome", outcome)))
}

// RecordEmbeddingFailure records an embedding provider failure.
func (m *Metrics) RecordEmbeddingFailure(provider string) {
	m.EmbeddingFailures.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("embeddings.provider", provider)))
}
