package itinerary

import (
	"math"
	"strconv"
	"strings"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

// ParseLocation parses "lat,lng". Both halves must be finite floats.
func ParseLocation(s string) (types.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.Coordinate{}, types.NewValidationError("location", "expected \"lat,lng\", got %q", s)
	}

	lat, err := parseFinite(parts[0])
	if err != nil {
		return types.Coordinate{}, types.NewValidationError("location", "invalid latitude %q", strings.TrimSpace(parts[0]))
	}
	lng, err := parseFinite(parts[1])
	if err != nil {
		return types.Coordinate{}, types.NewValidationError("location", "invalid longitude %q", strings.TrimSpace(parts[1]))
	}
	return types.Coordinate{Lat: lat, Lng: lng}, nil
}

// parseFinite accepts decimal notation only, no hex floats like "0x1p4".
func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xXpP_") {
		return 0, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, strconv.ErrRange
	}
	return f, nil
}
