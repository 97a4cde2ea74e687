package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// LatLng is a coordinate as reported by the places service; either half may be missing.
type LatLng struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// Coordinate returns the point and whether both halves are present.
func (l LatLng) Coordinate() (Coordinate, bool) {
	if l.Lat == nil || l.Lng == nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *l.Lat, Lng: *l.Lng}, true
}

// Distance is kilometres from the search origin. +Inf (unknown) is encoded as null.
type Distance float64

func (d Distance) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (d *Distance) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Distance(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Distance(f)
	return nil
}

// Venue is a candidate place enriched with its distance and schedule times.
// StartTime/EndTime are the planned window; VisitStartTime/VisitEndTime are
// set by check-in and check-out.
type Venue struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Location         LatLng   `json:"location"`
	Types            []string `json:"types"`
	Vicinity         string   `json:"vicinity"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	Distance         Distance `json:"distance"`
	StartTime        *string  `json:"start_time"`
	EndTime          *string  `json:"end_time"`
	VisitStartTime   *string  `json:"visit_start_time"`
	VisitEndTime     *string  `json:"visit_end_time"`
}

// Travel is the leg between two consecutive venues.
type Travel struct {
	From       string `json:"from"`
	To         string `json:"to"`
	TravelMode string `json:"travel_mode"`
	TravelTime string `json:"travel_time"`
}

type EntryType string

const (
	EntryTypeVenue  EntryType = "venue"
	EntryTypeTravel EntryType = "travel"
)

// UnknownTravelTime stands in for a leg whose duration could not be looked up.
const UnknownTravelTime = "Unknown"

// ItineraryEntry holds exactly one of Venue or Travel, selected by Type.
// It is encoded flat with a "type" discriminator, which is also the stored shape.
type ItineraryEntry struct {
	Type   EntryType
	Venue  *Venue
	Travel *Travel
}

func NewVenueEntry(v Venue) ItineraryEntry {
	return ItineraryEntry{Type: EntryTypeVenue, Venue: &v}
}

func NewTravelEntry(t Travel) ItineraryEntry {
	return ItineraryEntry{Type: EntryTypeTravel, Travel: &t}
}

func (e ItineraryEntry) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EntryTypeVenue:
		if e.Venue == nil {
			return nil, fmt.Errorf("venue entry without venue")
		}
		return json.Marshal(struct {
			Type EntryType `json:"type"`
			*Venue
		}{e.Type, e.Venue})
	case EntryTypeTravel:
		if e.Travel == nil {
			return nil, fmt.Errorf("travel entry without travel")
		}
		return json.Marshal(struct {
			Type EntryType `json:"type"`
			*Travel
		}{e.Type, e.Travel})
	default:
		return nil, fmt.Errorf("unknown itinerary entry type %q", e.Type)
	}
}

func (e *ItineraryEntry) UnmarshalJSON(b []byte) error {
	var head struct {
		Type EntryType `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	switch head.Type {
	case EntryTypeVenue:
		var v Venue
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*e = ItineraryEntry{Type: EntryTypeVenue, Venue: &v}
	case EntryTypeTravel:
		var t Travel
		if err := json.Unmarshal(b, &t); err != nil {
			return err
		}
		*e = ItineraryEntry{Type: EntryTypeTravel, Travel: &t}
	default:
		return fmt.Errorf("unknown itinerary entry type %q", head.Type)
	}
	return nil
}

// BuildItineraryRequest is the body of POST /places.
type BuildItineraryRequest struct {
	Location   string   `json:"location" example:"44.4268,26.1025"`
	Radius     *float64 `json:"radius,omitempty" example:"5000"`
	Keywords   []string `json:"keywords,omitempty"`
	TravelMode string   `json:"travel_mode,omitempty" example:"walk"`
}

type BuildItineraryResponse struct {
	Itinerary []ItineraryEntry `json:"itinerary"`
}

// UpstreamErrorResponse is returned when the places service refuses a search.
type UpstreamErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id"`
}

// VisitedVenue records a completed check-out.
type VisitedVenue struct {
	PlaceID        string  `json:"place_id"`
	Name           string  `json:"name"`
	VisitStartTime *string `json:"visit_start_time"`
	VisitEndTime   *string `json:"visit_end_time"`
}

// Schedule is an itinerary a user accepted, with progress tracking.
type Schedule struct {
	ScheduleID    uuid.UUID        `json:"schedule_id"`
	UserID        uuid.UUID        `json:"-"`
	Title         string           `json:"title"`
	Entries       []ItineraryEntry `json:"schedule"`
	VisitedVenues []VisitedVenue   `json:"visited_venues"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type CreateScheduleRequest struct {
	Title    string           `json:"title,omitempty" example:"My Trip"`
	Schedule []ItineraryEntry `json:"schedule"`
}

type CreateScheduleResponse struct {
	Message    string    `json:"message"`
	ScheduleID uuid.UUID `json:"schedule_id"`
}

type ActiveScheduleResponse struct {
	ScheduleID    uuid.UUID        `json:"schedule_id"`
	Title         string           `json:"title"`
	Schedule      []ItineraryEntry `json:"schedule"`
	VisitedVenues []VisitedVenue   `json:"visited_venues"`
}

type NextVenueResponse struct {
	NextVenue  *ItineraryEntry `json:"next_venue,omitempty"`
	ScheduleID *uuid.UUID      `json:"schedule_id,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type CheckInRequest struct {
	VenueName  string  `json:"venue_name"`
	PlaceID    string  `json:"place_id,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	ScheduleID string  `json:"schedule_id,omitempty"`
}

type CheckOutRequest struct {
	VenueName  string  `json:"venue_name"`
	PlaceID    string  `json:"place_id,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	ScheduleID string  `json:"schedule_id,omitempty"`
}

// VisitUpdate is a validated check-in or check-out.
type VisitUpdate struct {
	ScheduleID *uuid.UUID
	VenueName  string
	PlaceID    string
	At         time.Time
}

type ScheduleHistoryItem struct {
	ScheduleID uuid.UUID        `json:"schedule_id"`
	Title      string           `json:"title"`
	IsActive   bool             `json:"is_active"`
	CreatedAt  time.Time        `json:"created_at"`
	Schedule   []ItineraryEntry `json:"schedule"`
}

// PlaceDetails is the formatted answer of GET /places/details/{placeID}.
type PlaceDetails struct {
	Name                 string        `json:"name"`
	FormattedAddress     *string       `json:"formatted_address"`
	FormattedPhoneNumber *string       `json:"formatted_phone_number"`
	Rating               *float64      `json:"rating"`
	Photos               []string      `json:"photos"`
	Description          *string       `json:"description"`
	GoogleMapsURL        *string       `json:"google_maps_url"`
	Website              *string       `json:"website"`
	OpeningHours         []string      `json:"opening_hours"`
	PriceLevel           *int          `json:"price_level"`
	Reviews              []PlaceReview `json:"reviews"`
}

type PlaceReview struct {
	AuthorName string   `json:"author_name"`
	Rating     *float64 `json:"rating"`
	Text       string   `json:"text"`
	Time       string   `json:"time"`
}
