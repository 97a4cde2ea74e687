package itinerary

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/urban-guide/internal/api/googlemaps"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

// PlacesClient is the part of the Google Maps client the itinerary code uses.
type PlacesClient interface {
	NearbySearch(ctx context.Context, req googlemaps.NearbySearchRequest) ([]googlemaps.Place, error)
	DistanceMatrix(ctx context.Context, req googlemaps.DistanceMatrixRequest) (string, error)
	PlaceDetails(ctx context.Context, placeID string, fields []string) (*googlemaps.PlaceDetails, error)
	PhotoURL(photoReference string, maxWidth int) string
}

var _ PlacesClient = (*googlemaps.Client)(nil)

// BuildParams is a validated build request.
type BuildParams struct {
	Origin     types.Coordinate
	Radius     float64
	Keywords   []string
	TravelMode string
}

// Builder turns a nearby search into a sequenced itinerary.
type Builder struct {
	places      PlacesClient
	maxVenues   int
	concurrency int
	plan        SlotPlan
	logger      *slog.Logger
}

func NewBuilder(places PlacesClient, maxVenues, concurrency int, plan SlotPlan, logger *slog.Logger) *Builder {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Builder{
		places:      places,
		maxVenues:   maxVenues,
		concurrency: concurrency,
		plan:        plan,
		logger:      logger,
	}
}

// Build runs the search, orders the venues nearest-first, looks up the travel
// time of each leg and assigns visit windows. Only the search can fail the build.
func (b *Builder) Build(ctx context.Context, p BuildParams) ([]types.ItineraryEntry, error) {
	ctx, span := otel.Tracer("ItineraryBuilder").Start(ctx, "Build", trace.WithAttributes(
		attribute.Float64("itinerary.radius", p.Radius),
		attribute.StringSlice("itinerary.keywords", p.Keywords),
		attribute.String("itinerary.travel_mode", p.TravelMode),
	))
	defer span.End()

	places, err := b.places.NearbySearch(ctx, googlemaps.NearbySearchRequest{
		Location: p.Origin,
		Radius:   p.Radius,
		Keywords: p.Keywords,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	venues := Candidates(p.Origin, places, b.maxVenues)
	SortByDistance(venues)
	times := b.TravelTimes(ctx, venues, p.TravelMode)
	entries := Interleave(venues, times, p.TravelMode)
	AssignTimeWindows(entries, b.plan)

	span.SetAttributes(attribute.Int("itinerary.venues", len(venues)))
	return entries, nil
}

// Candidates keeps the first max places and computes each one's distance from
// origin. A place without both coordinates is infinitely far.
func Candidates(origin types.Coordinate, places []googlemaps.Place, max int) []types.Venue {
	if max > 0 && len(places) > max {
		places = places[:max]
	}
	venues := make([]types.Venue, 0, len(places))
	for _, pl := range places {
		dist := math.Inf(1)
		if c, ok := pl.Geometry.Location.Coordinate(); ok {
			dist = Haversine(origin, c)
		}
		categories := pl.Types
		if categories == nil {
			categories = []string{}
		}
		venues = append(venues, types.Venue{
			PlaceID:          pl.PlaceID,
			Name:             pl.Name,
			Location:         pl.Geometry.Location,
			Types:            categories,
			Vicinity:         pl.Vicinity,
			Rating:           pl.Rating,
			UserRatingsTotal: pl.UserRatingsTotal,
			Distance:         types.Distance(dist),
		})
	}
	return venues
}

// SortByDistance orders venues nearest-first, keeping source order on ties.
func SortByDistance(venues []types.Venue) {
	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].Distance < venues[j].Distance
	})
}

// TravelTimes returns one duration per adjacent pair: result[i] is the leg from
// venues[i] to venues[i+1]. Lookups run concurrently up to the builder's
// concurrency; any failed or unanswered lookup is UnknownTravelTime.
func (b *Builder) TravelTimes(ctx context.Context, venues []types.Venue, mode string) []string {
	if len(venues) < 2 {
		return nil
	}
	out := make([]string, len(venues)-1)

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i := range out {
		out[i] = types.UnknownTravelTime

		from, okFrom := venues[i].Location.Coordinate()
		to, okTo := venues[i+1].Location.Coordinate()
		if !okFrom || !okTo {
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			text, err := b.places.DistanceMatrix(ctx, googlemaps.DistanceMatrixRequest{
				Origin:      from,
				Destination: to,
				Mode:        mode,
			})
			if err != nil {
				b.logger.WarnContext(ctx, "Travel time lookup failed",
					slog.String("from", venues[i].Name),
					slog.String("to", venues[i+1].Name),
					slog.Any("error", err))
				return nil
			}
			out[i] = text
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Interleave produces venue, travel, venue, ... , venue.
func Interleave(venues []types.Venue, travelTimes []string, mode string) []types.ItineraryEntry {
	if len(venues) == 0 {
		return []types.ItineraryEntry{}
	}
	entries := make([]types.ItineraryEntry, 0, 2*len(venues)-1)
	for i, v := range venues {
		entries = append(entries, types.NewVenueEntry(v))
		if i == len(venues)-1 {
			break
		}
		tt := types.UnknownTravelTime
		if i < len(travelTimes) && travelTimes[i] != "" {
			tt = travelTimes[i]
		}
		entries = append(entries, types.NewTravelEntry(types.Travel{
			From:       v.Name,
			To:         venues[i+1].Name,
			TravelMode: mode,
			TravelTime: tt,
		}))
	}
	return entries
}
