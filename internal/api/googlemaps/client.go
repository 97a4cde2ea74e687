package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/config"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

const (
	opNearbySearch   = "nearby_search"
	opDistanceMatrix = "distance_matrix"
	opPlaceDetails   = "place_details"
)

// Client talks to the Google Maps web services.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	apiKey  string
	baseURL string
	metrics *metrics.AppMetrics
	logger  *slog.Logger
}

func NewClient(cfg config.GoogleConfig, m *metrics.AppMetrics, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(isTransient)

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		http:    c,
		limiter: rate.NewLimiter(limit, burst),
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		metrics: m,
		logger:  logger,
	}
}

// isTransient retries transport failures, throttling and 5xx. Other 4xx are final.
// resty stops on its own once the request context is done.
func isTransient(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// NearbySearch returns the places around req.Location. ZERO_RESULTS is an empty slice.
func (c *Client) NearbySearch(ctx context.Context, req NearbySearchRequest) ([]Place, error) {
	ctx, span := otel.Tracer("GoogleMapsClient").Start(ctx, "NearbySearch", trace.WithAttributes(
		attribute.Float64("search.radius", req.Radius),
		attribute.StringSlice("search.keywords", req.Keywords),
	))
	defer span.End()

	params := url.Values{}
	params.Set("location", formatCoordinate(req.Location))
	params.Set("radius", strconv.FormatFloat(req.Radius, 'f', -1, 64))
	for _, kw := range req.Keywords {
		params.Add("keyword", kw)
	}

	var out nearbySearchResponse
	if err := c.get(ctx, opNearbySearch, "/place/nearbysearch/json", params, &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nearby search failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(out.Results)))
	span.SetStatus(codes.Ok, "nearby search completed")
	return out.Results, nil
}

// DistanceMatrix returns the display duration ("12 mins") between two points.
func (c *Client) DistanceMatrix(ctx context.Context, req DistanceMatrixRequest) (string, error) {
	ctx, span := otel.Tracer("GoogleMapsClient").Start(ctx, "DistanceMatrix", trace.WithAttributes(
		attribute.String("travel.mode", req.Mode),
	))
	defer span.End()

	params := url.Values{}
	params.Set("origins", formatCoordinate(req.Origin))
	params.Set("destinations", formatCoordinate(req.Destination))
	if req.Mode != "" {
		params.Set("mode", req.Mode)
	}

	var out distanceMatrixResponse
	if err := c.get(ctx, opDistanceMatrix, "/distancematrix/json", params, &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "distance matrix failed")
		return "", err
	}

	if len(out.Rows) == 0 || len(out.Rows[0].Elements) == 0 {
		err := &types.UpstreamError{Operation: opDistanceMatrix, StatusCode: http.StatusBadGateway, Message: "distance matrix returned no elements"}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Message)
		return "", err
	}
	el := out.Rows[0].Elements[0]
	if el.Status != StatusOK || el.Duration == nil || el.Duration.Text == "" {
		err := &types.UpstreamError{Operation: opDistanceMatrix, StatusCode: http.StatusBadGateway, Message: fmt.Sprintf("element status %s", el.Status)}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Message)
		return "", err
	}

	span.SetStatus(codes.Ok, "distance matrix completed")
	return el.Duration.Text, nil
}

// PlaceDetails fetches the given fields for one place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetails, error) {
	ctx, span := otel.Tracer("GoogleMapsClient").Start(ctx, "PlaceDetails", trace.WithAttributes(
		attribute.String("place.id", placeID),
	))
	defer span.End()

	params := url.Values{}
	params.Set("place_id", placeID)
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	var out placeDetailsResponse
	if err := c.get(ctx, opPlaceDetails, "/place/details/json", params, &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "place details failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "place details completed")
	return &out.Result, nil
}

// PhotoURL builds the photo endpoint URL for a photo reference.
func (c *Client) PhotoURL(photoReference string, maxWidth int) string {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photo_reference", photoReference)
	params.Set("key", c.apiKey)
	return c.baseURL + "/place/photo?" + params.Encode()
}

// get performs one rate-limited GET and decodes the body into out, whose
// embedded envelope carries the Google status.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out interface{ status() envelope }) error {
	start := time.Now()
	outcome := "error"
	defer func() {
		attrs := metric.WithAttributes(attribute.String("operation", op), attribute.String("outcome", outcome))
		c.metrics.UpstreamRequestsTotal.Add(ctx, 1, attrs)
		c.metrics.UpstreamDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		outcome = "rate_limited"
		return transportError(op, err)
	}

	params.Set("key", c.apiKey)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(path)
	if err != nil {
		c.logger.WarnContext(ctx, "Google Maps request failed", slog.String("operation", op), slog.Any("error", err))
		return transportError(op, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		var env envelope
		_ = json.Unmarshal(body, &env)
		msg := env.ErrorMessage
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		c.logger.WarnContext(ctx, "Google Maps returned non-success status",
			slog.String("operation", op),
			slog.Int("status_code", resp.StatusCode()),
			slog.String("message", msg))
		return &types.UpstreamError{Operation: op, StatusCode: resp.StatusCode(), Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &types.UpstreamError{Operation: op, StatusCode: http.StatusBadGateway, Message: "malformed response body", Err: err}
	}

	env := out.status()
	if code, ok := statusCode(env.Status); !ok {
		msg := env.ErrorMessage
		if msg == "" {
			msg = env.Status
		}
		c.logger.WarnContext(ctx, "Google Maps rejected request",
			slog.String("operation", op),
			slog.String("status", env.Status),
			slog.String("message", msg))
		return &types.UpstreamError{Operation: op, StatusCode: code, Message: msg}
	}

	outcome = "ok"
	return nil
}

func (e envelope) status() envelope { return e }

// statusCode maps a Google body status to an HTTP status; ok reports success.
func statusCode(status string) (int, bool) {
	switch status {
	case StatusOK, StatusZeroResults:
		return http.StatusOK, true
	case StatusRequestDenied:
		return http.StatusForbidden, false
	case StatusInvalidRequest:
		return http.StatusBadRequest, false
	case StatusOverQueryLimit:
		return http.StatusTooManyRequests, false
	case StatusNotFound:
		return http.StatusNotFound, false
	default:
		return http.StatusBadGateway, false
	}
}

func transportError(op string, err error) error {
	code := http.StatusBadGateway
	msg := "upstream service unavailable"
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		code = http.StatusGatewayTimeout
		msg = "upstream service timed out"
	}
	return &types.UpstreamError{Operation: op, StatusCode: code, Message: msg, Err: err}
}

func formatCoordinate(c types.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
