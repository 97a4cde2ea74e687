package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

const minutesPerDay = 24 * 60

// SlotPlan is the fixed-duration schedule applied to an itinerary.
type SlotPlan struct {
	StartHour     int
	VisitMinutes  int
	TravelMinutes int
}

// FormatClock renders minutes since midnight as a 12-hour "HH:MM AM|PM" string.
// Values past midnight wrap around.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	h, m := minutes/60, minutes%60

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, m, suffix)
}

// AssignTimeWindows sets start/end times on venue entries in order. Each venue
// takes VisitMinutes and every gap between venues takes TravelMinutes,
// whatever the looked-up travel time says.
func AssignTimeWindows(entries []types.ItineraryEntry, plan SlotPlan) {
	clock := plan.StartHour * 60
	for _, e := range entries {
		if e.Type != types.EntryTypeVenue || e.Venue == nil {
			continue
		}
		start := FormatClock(clock)
		end := FormatClock(clock + plan.VisitMinutes)
		e.Venue.StartTime = &start
		e.Venue.EndTime = &end
		clock += plan.VisitMinutes + plan.TravelMinutes
	}
}
