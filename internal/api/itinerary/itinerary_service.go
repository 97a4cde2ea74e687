package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/config"
	"github.com/FACorreiaa/urban-guide/internal/api/googlemaps"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service builds itineraries and looks up place details.
type Service interface {
	BuildItinerary(ctx context.Context, req types.BuildItineraryRequest) ([]types.ItineraryEntry, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error)
}

type ServiceImpl struct {
	builder      *Builder
	places       PlacesClient
	cfg          config.ItineraryConfig
	detailsCache *cache.Cache
	metrics      *metrics.AppMetrics
	logger       *slog.Logger
}

func NewServiceImpl(places PlacesClient, cfg config.ItineraryConfig, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	search := places
	if cfg.SearchCacheTTL > 0 {
		search = newCachedSearch(places, cfg.SearchCacheTTL)
	}
	plan := SlotPlan{
		StartHour:     cfg.StartHour,
		VisitMinutes:  cfg.VisitMinutes,
		TravelMinutes: cfg.TravelMinutes,
	}

	var details *cache.Cache
	if cfg.DetailsCacheTTL > 0 {
		details = cache.New(cfg.DetailsCacheTTL, 2*cfg.DetailsCacheTTL)
	}

	return &ServiceImpl{
		builder:      NewBuilder(search, cfg.MaxVenues, cfg.Concurrency, plan, logger),
		places:       places,
		cfg:          cfg,
		detailsCache: details,
		metrics:      m,
		logger:       logger,
	}
}

// BuildItinerary validates the request and builds the itinerary under the
// configured deadline.
func (s *ServiceImpl) BuildItinerary(ctx context.Context, req types.BuildItineraryRequest) ([]types.ItineraryEntry, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "BuildItinerary", trace.WithAttributes(
		attribute.String("itinerary.location", req.Location),
		attribute.Int("itinerary.keywords_requested", len(req.Keywords)),
	))
	defer span.End()

	start := time.Now()
	outcome := "error"
	var venues int
	defer func() {
		attrs := metric.WithAttributes(attribute.String("outcome", outcome))
		s.metrics.ItineraryBuildsTotal.Add(ctx, 1, attrs)
		s.metrics.ItineraryBuildDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		if outcome == "ok" {
			s.metrics.ItineraryVenuesReturned.Record(ctx, int64(venues))
		}
	}()

	params, err := s.buildParams(req)
	if err != nil {
		outcome = "invalid"
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}
	if dropped := droppedKeywords(req.Keywords); len(dropped) > 0 {
		span.SetAttributes(attribute.StringSlice("itinerary.keywords_dropped", dropped))
		s.logger.InfoContext(ctx, "Dropped unknown keywords", slog.Any("keywords", dropped))
	}

	if s.cfg.BuildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BuildTimeout)
		defer cancel()
	}

	entries, err := s.builder.Build(ctx, params)
	if err != nil {
		var upErr *types.UpstreamError
		if errors.As(err, &upErr) {
			outcome = "upstream_error"
		}
		s.logger.ErrorContext(ctx, "Failed to build itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")
		return nil, fmt.Errorf("failed to build itinerary: %w", err)
	}

	for _, e := range entries {
		if e.Type == types.EntryTypeVenue {
			venues++
		}
	}
	outcome = "ok"
	span.SetAttributes(attribute.Int("itinerary.entries", len(entries)))
	span.SetStatus(codes.Ok, "Itinerary built")
	return entries, nil
}

func (s *ServiceImpl) buildParams(req types.BuildItineraryRequest) (BuildParams, error) {
	if strings.TrimSpace(req.Location) == "" {
		return BuildParams{}, types.NewValidationError("location", "is required")
	}
	origin, err := ParseLocation(req.Location)
	if err != nil {
		return BuildParams{}, err
	}

	radius := s.cfg.DefaultRadius
	if req.Radius != nil {
		radius = *req.Radius
		if !(radius > 0) || math.IsInf(radius, 0) {
			return BuildParams{}, types.NewValidationError("radius", "must be a positive number of meters")
		}
	}

	mode := strings.TrimSpace(req.TravelMode)
	if mode == "" {
		mode = s.cfg.DefaultMode
	}

	return BuildParams{
		Origin:     origin,
		Radius:     radius,
		Keywords:   MapKeywords(req.Keywords),
		TravelMode: mode,
	}, nil
}

// GetPlaceDetails returns formatted details, serving repeats from cache.
func (s *ServiceImpl) GetPlaceDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetPlaceDetails", trace.WithAttributes(
		attribute.String("place.id", placeID),
	))
	defer span.End()

	if strings.TrimSpace(placeID) == "" {
		return nil, types.NewValidationError("place_id", "is required")
	}

	if s.detailsCache != nil {
		if v, ok := s.detailsCache.Get(placeID); ok {
			s.metrics.PlaceDetailsCacheHits.Add(ctx, 1)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			d := v.(types.PlaceDetails)
			return &d, nil
		}
		s.metrics.PlaceDetailsCacheMisses.Add(ctx, 1)
	}

	raw, err := s.places.PlaceDetails(ctx, placeID, googlemaps.DetailsFields)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch place details", slog.String("place_id", placeID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "place details failed")
		return nil, fmt.Errorf("failed to fetch place details: %w", err)
	}

	details := s.formatDetails(raw)
	if s.detailsCache != nil {
		s.detailsCache.SetDefault(placeID, details)
	}

	span.SetStatus(codes.Ok, "Place details retrieved")
	return &details, nil
}

func (s *ServiceImpl) formatDetails(raw *googlemaps.PlaceDetails) types.PlaceDetails {
	photos := make([]string, 0, s.cfg.MaxPhotos)
	for _, p := range raw.Photos {
		if len(photos) == s.cfg.MaxPhotos {
			break
		}
		if p.PhotoReference == "" {
			continue
		}
		photos = append(photos, s.places.PhotoURL(p.PhotoReference, s.cfg.PhotoMaxWidth))
	}

	reviews := make([]types.PlaceReview, 0, len(raw.Reviews))
	for _, r := range raw.Reviews {
		reviews = append(reviews, types.PlaceReview{
			AuthorName: r.AuthorName,
			Rating:     r.Rating,
			Text:       r.Text,
			Time:       r.RelativeTimeDescription,
		})
	}

	var description *string
	if raw.EditorialSummary != nil && raw.EditorialSummary.Overview != "" {
		description = &raw.EditorialSummary.Overview
	}
	var hours []string
	if raw.OpeningHours != nil {
		hours = raw.OpeningHours.WeekdayText
	}

	return types.PlaceDetails{
		Name:                 raw.Name,
		FormattedAddress:     raw.FormattedAddress,
		FormattedPhoneNumber: raw.FormattedPhoneNumber,
		Rating:               raw.Rating,
		Photos:               photos,
		Description:          description,
		GoogleMapsURL:        raw.URL,
		Website:              raw.Website,
		OpeningHours:         hours,
		PriceLevel:           raw.PriceLevel,
		Reviews:              reviews,
	}
}
