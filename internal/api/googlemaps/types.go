package googlemaps

import "github.com/FACorreiaa/urban-guide/internal/types"

// Google web service body statuses.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusNotFound       = "NOT_FOUND"
)

// Place is a single Nearby Search result.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Geometry         Geometry `json:"geometry"`
	Types            []string `json:"types"`
	Vicinity         string   `json:"vicinity"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
}

type Geometry struct {
	Location types.LatLng `json:"location"`
}

// NearbySearchRequest is the input of NearbySearch. Keywords are sent as repeated keyword parameters.
type NearbySearchRequest struct {
	Location types.Coordinate
	Radius   float64
	Keywords []string
}

type DistanceMatrixRequest struct {
	Origin      types.Coordinate
	Destination types.Coordinate
	Mode        string
}

type PlaceDetails struct {
	Name                 string            `json:"name"`
	FormattedAddress     *string           `json:"formatted_address"`
	FormattedPhoneNumber *string           `json:"formatted_phone_number"`
	Rating               *float64          `json:"rating"`
	Photos               []Photo           `json:"photos"`
	EditorialSummary     *EditorialSummary `json:"editorial_summary"`
	URL                  *string           `json:"url"`
	Website              *string           `json:"website"`
	OpeningHours         *OpeningHours     `json:"opening_hours"`
	PriceLevel           *int              `json:"price_level"`
	Reviews              []Review          `json:"reviews"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type EditorialSummary struct {
	Overview string `json:"overview"`
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

type Review struct {
	AuthorName              string   `json:"author_name"`
	Rating                  *float64 `json:"rating"`
	Text                    string   `json:"text"`
	RelativeTimeDescription string   `json:"relative_time_description"`
}

// DetailsFields is the field mask requested for place details.
var DetailsFields = []string{
	"name", "formatted_address", "formatted_phone_number", "rating", "reviews", "photos",
	"editorial_summary", "url", "website", "opening_hours", "price_level",
}

type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type nearbySearchResponse struct {
	envelope
	Results []Place `json:"results"`
}

type distanceMatrixResponse struct {
	envelope
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration *struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

type placeDetailsResponse struct {
	envelope
	Result PlaceDetails `json:"result"`
}
