package schedule

import (
	"github.com/FACorreiaa/urban-guide/internal/types"
)

// NextVenue returns the first venue that is in progress or not yet visited,
// or nil when every venue has an end time. An empty end time counts as unset.
func NextVenue(entries []types.ItineraryEntry) *types.ItineraryEntry {
	for i := range entries {
		e := &entries[i]
		if e.Type != types.EntryTypeVenue || e.Venue == nil {
			continue
		}
		// started-but-not-ended and never-started both qualify
		if e.Venue.VisitEndTime == nil || *e.Venue.VisitEndTime == "" {
			return e
		}
	}
	return nil
}

// FindVenue returns the index of the venue a check-in or check-out refers to,
// or -1. A non-empty placeID must match exactly; otherwise the first venue
// with exactly that name is chosen.
func FindVenue(entries []types.ItineraryEntry, placeID, name string) int {
	for i, e := range entries {
		if e.Type != types.EntryTypeVenue || e.Venue == nil {
			continue
		}
		if placeID != "" {
			if e.Venue.PlaceID == placeID {
				return i
			}
			continue
		}
		if name != "" && e.Venue.Name == name {
			return i
		}
	}
	return -1
}

// StartVisit stamps the venue at idx with its check-in time.
func StartVisit(entries []types.ItineraryEntry, idx int, at string) {
	entries[idx].Venue.VisitStartTime = &at
}

// EndVisit stamps the venue at idx with its check-out time and returns the
// visited-venue record to append.
func EndVisit(entries []types.ItineraryEntry, idx int, at string) types.VisitedVenue {
	v := entries[idx].Venue
	v.VisitEndTime = &at
	return types.VisitedVenue{
		PlaceID:        v.PlaceID,
		Name:           v.Name,
		VisitStartTime: v.VisitStartTime,
		VisitEndTime:   v.VisitEndTime,
	}
}
