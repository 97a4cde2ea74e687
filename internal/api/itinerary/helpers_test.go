package itinerary

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/config"
	"github.com/FACorreiaa/urban-guide/internal/api/googlemaps"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

// MockPlacesClient is a mock implementation of PlacesClient
type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) NearbySearch(ctx context.Context, req googlemaps.NearbySearchRequest) ([]googlemaps.Place, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]googlemaps.Place), args.Error(1)
}

func (m *MockPlacesClient) DistanceMatrix(ctx context.Context, req googlemaps.DistanceMatrixRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockPlacesClient) PlaceDetails(ctx context.Context, placeID string, fields []string) (*googlemaps.PlaceDetails, error) {
	args := m.Called(ctx, placeID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googlemaps.PlaceDetails), args.Error(1)
}

func (m *MockPlacesClient) PhotoURL(photoReference string, maxWidth int) string {
	args := m.Called(photoReference, maxWidth)
	return args.String(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics(t *testing.T) *metrics.AppMetrics {
	t.Helper()
	m, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

func testItineraryConfig() config.ItineraryConfig {
	return config.ItineraryConfig{
		MaxVenues:     8,
		DefaultRadius: 5000,
		DefaultMode:   "walk",
		Concurrency:   4,
		BuildTimeout:  5 * time.Second,
		StartHour:     9,
		VisitMinutes:  60,
		TravelMinutes: 30,
		MaxPhotos:     5,
		PhotoMaxWidth: 800,
	}
}

func f64(v float64) *float64 { return &v }

// place returns a search result at (lat, lng).
func place(id string, lat, lng float64) googlemaps.Place {
	return googlemaps.Place{
		PlaceID:  id,
		Name:     "Venue " + id,
		Geometry: googlemaps.Geometry{Location: types.LatLng{Lat: f64(lat), Lng: f64(lng)}},
		Types:    []string{"point_of_interest"},
	}
}

// placeNoGeo returns a search result without coordinates.
func placeNoGeo(id string) googlemaps.Place {
	return googlemaps.Place{PlaceID: id, Name: "Venue " + id}
}

func venueEntries(entries []types.ItineraryEntry) []*types.Venue {
	var out []*types.Venue
	for _, e := range entries {
		if e.Type == types.EntryTypeVenue {
			out = append(out, e.Venue)
		}
	}
	return out
}
