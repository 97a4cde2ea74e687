package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleEntries() []types.ItineraryEntry {
	return []types.ItineraryEntry{
		types.NewVenueEntry(types.Venue{PlaceID: "p1", Name: "Herastrau Park"}),
		types.NewTravelEntry(types.Travel{From: "Herastrau Park", To: "Old Town", TravelMode: "walk", TravelTime: "12 mins"}),
		types.NewVenueEntry(types.Venue{PlaceID: "p2", Name: "Old Town"}),
		types.NewTravelEntry(types.Travel{From: "Old Town", To: "Old Town", TravelMode: "walk", TravelTime: "1 min"}),
		types.NewVenueEntry(types.Venue{PlaceID: "p3", Name: "Old Town"}),
	}
}

func TestNextVenue(t *testing.T) {
	t.Run("NothingVisited", func(t *testing.T) {
		next := NextVenue(sampleEntries())
		require.NotNil(t, next)
		assert.Equal(t, "p1", next.Venue.PlaceID)
	})

	t.Run("InProgressVenueIsNext", func(t *testing.T) {
		entries := sampleEntries()
		entries[0].Venue.VisitStartTime = strPtr("2026-10-19T09:00:00Z")
		next := NextVenue(entries)
		require.NotNil(t, next)
		assert.Equal(t, "p1", next.Venue.PlaceID)
	})

	t.Run("SkipsFinished", func(t *testing.T) {
		entries := sampleEntries()
		entries[0].Venue.VisitStartTime = strPtr("2026-10-19T09:00:00Z")
		entries[0].Venue.VisitEndTime = strPtr("2026-10-19T10:00:00Z")
		next := NextVenue(entries)
		require.NotNil(t, next)
		assert.Equal(t, "p2", next.Venue.PlaceID)
	})

	t.Run("EmptyTimesCountAsUnset", func(t *testing.T) {
		entries := sampleEntries()
		entries[0].Venue.VisitStartTime = strPtr("")
		entries[0].Venue.VisitEndTime = strPtr("")
		next := NextVenue(entries)
		require.NotNil(t, next)
		assert.Equal(t, "p1", next.Venue.PlaceID)
	})

	t.Run("AllVisited", func(t *testing.T) {
		entries := sampleEntries()
		for i := range entries {
			if entries[i].Venue != nil {
				entries[i].Venue.VisitEndTime = strPtr("2026-10-19T10:00:00Z")
			}
		}
		assert.Nil(t, NextVenue(entries))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, NextVenue(nil))
	})
}

func TestFindVenue(t *testing.T) {
	entries := sampleEntries()

	tests := []struct {
		name    string
		placeID string
		venue   string
		want    int
	}{
		{"ByPlaceID", "p3", "", 4},
		{"PlaceIDWinsOverName", "p3", "Herastrau Park", 4},
		{"UnknownPlaceIDDoesNotFallBackToName", "nope", "Herastrau Park", -1},
		{"FirstExactNameMatch", "", "Old Town", 2},
		{"NameIsCaseSensitive", "", "old town", -1},
		{"TravelEntriesIgnored", "", "12 mins", -1},
		{"NothingGiven", "", "", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindVenue(entries, tt.placeID, tt.venue))
		})
	}
}

func TestStartAndEndVisit(t *testing.T) {
	entries := sampleEntries()

	StartVisit(entries, 2, "2026-10-19T09:00:00Z")
	require.NotNil(t, entries[2].Venue.VisitStartTime)
	assert.Equal(t, "2026-10-19T09:00:00Z", *entries[2].Venue.VisitStartTime)
	assert.Nil(t, entries[2].Venue.VisitEndTime)

	visited := EndVisit(entries, 2, "2026-10-19T10:30:00Z")
	assert.Equal(t, "p2", visited.PlaceID)
	assert.Equal(t, "Old Town", visited.Name)
	assert.Equal(t, "2026-10-19T09:00:00Z", *visited.VisitStartTime)
	assert.Equal(t, "2026-10-19T10:30:00Z", *visited.VisitEndTime)
	assert.Equal(t, "2026-10-19T10:30:00Z", *entries[2].Venue.VisitEndTime)

	// other venues untouched
	assert.Nil(t, entries[4].Venue.VisitStartTime)
}

func TestEndVisitWithoutCheckIn(t *testing.T) {
	entries := sampleEntries()
	visited := EndVisit(entries, 0, "2026-10-19T10:00:00Z")
	assert.Nil(t, visited.VisitStartTime)
	assert.NotNil(t, visited.VisitEndTime)
}
