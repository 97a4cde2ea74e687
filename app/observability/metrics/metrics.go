package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryBuildsTotal    metric.Int64Counter
	ItineraryBuildDuration  metric.Float64Histogram
	ItineraryVenuesReturned metric.Int64Histogram
	UpstreamRequestsTotal   metric.Int64Counter
	UpstreamDurationSeconds metric.Float64Histogram
	DbQueryDurationSeconds  metric.Float64Histogram
	DbQueryErrorsTotal      metric.Int64Counter
	PlaceDetailsCacheHits   metric.Int64Counter
	PlaceDetailsCacheMisses metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics creates every instrument on the given meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	if m.ItineraryBuildsTotal, err = meter.Int64Counter(
		"itinerary_builds_total",
		metric.WithDescription("Total number of itinerary builds by outcome"),
		metric.WithUnit("{build}"),
	); err != nil {
		return nil, fmt.Errorf("itinerary_builds_total: %w", err)
	}

	if m.ItineraryBuildDuration, err = meter.Float64Histogram(
		"itinerary_build_duration_seconds",
		metric.WithDescription("Duration of itinerary builds in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("itinerary_build_duration_seconds: %w", err)
	}

	if m.ItineraryVenuesReturned, err = meter.Int64Histogram(
		"itinerary_venues_returned",
		metric.WithDescription("Number of venues in a built itinerary"),
		metric.WithUnit("{venue}"),
	); err != nil {
		return nil, fmt.Errorf("itinerary_venues_returned: %w", err)
	}

	if m.UpstreamRequestsTotal, err = meter.Int64Counter(
		"upstream_requests_total",
		metric.WithDescription("Total number of Google Maps requests by operation and outcome"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("upstream_requests_total: %w", err)
	}

	if m.UpstreamDurationSeconds, err = meter.Float64Histogram(
		"upstream_request_duration_seconds",
		metric.WithDescription("Duration of Google Maps requests in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("upstream_request_duration_seconds: %w", err)
	}

	if m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("db_query_duration_seconds: %w", err)
	}

	if m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("db_query_errors_total: %w", err)
	}

	if m.PlaceDetailsCacheHits, err = meter.Int64Counter(
		"place_details_cache_hits_total",
		metric.WithDescription("Place details served from cache"),
	); err != nil {
		return nil, fmt.Errorf("place_details_cache_hits_total: %w", err)
	}

	if m.PlaceDetailsCacheMisses, err = meter.Int64Counter(
		"place_details_cache_misses_total",
		metric.WithDescription("Place details fetched from Google"),
	); err != nil {
		return nil, fmt.Errorf("place_details_cache_misses_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE
// from the globally configured MeterProvider.
func InitAppMetrics(serviceName string) {
	once.Do(func() {
		m, err := NewAppMetrics(otel.GetMeterProvider().Meter(serviceName))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
