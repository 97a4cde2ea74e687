package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/urban-guide/internal/api"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// BuildItinerary godoc
// @Summary      Build an itinerary
// @Description  Searches places near a location and returns venues ordered nearest-first, interleaved with travel legs and visit windows.
// @Tags         places
// @Accept       json
// @Produce      json
// @Param        request body types.BuildItineraryRequest true "Search parameters"
// @Success      200 {object} types.BuildItineraryResponse
// @Failure      400 {object} api.Response
// @Failure      403 {object} types.UpstreamErrorResponse
// @Failure      502 {object} types.UpstreamErrorResponse
// @Router       /places [post]
func (h *Handler) BuildItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "BuildItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "BuildItinerary"))
	l.DebugContext(ctx, "Build itinerary handler invoked")

	var req types.BuildItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.service.BuildItinerary(ctx, req)
	if err != nil {
		h.writeError(w, r, l, err, "Failed to fetch places")
		return
	}

	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	l.InfoContext(ctx, "Itinerary built", slog.Int("entries", len(entries)))
	api.WriteJSONResponse(w, r, http.StatusOK, types.BuildItineraryResponse{Itinerary: entries})
}

// GetPlaceDetails godoc
// @Summary      Place details
// @Description  Formatted details of a place, with up to five photo URLs and its reviews.
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        placeID path string true "Google place ID"
// @Success      200 {object} types.PlaceDetails
// @Failure      401 {object} api.Response
// @Failure      404 {object} types.UpstreamErrorResponse
// @Router       /places/details/{placeID} [get]
func (h *Handler) GetPlaceDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetPlaceDetails", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/details/{placeID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetPlaceDetails"))
	placeID := chi.URLParam(r, "placeID")
	if placeID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Place ID is required")
		return
	}
	l = l.With(slog.String("place_id", placeID))

	details, err := h.service.GetPlaceDetails(ctx, placeID)
	if err != nil {
		h.writeError(w, r, l, err, "Failed to fetch place details")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, details)
}

// writeError maps the two client-visible error kinds; anything else is a logged 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error, upstreamMsg string) {
	ctx := r.Context()

	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		l.WarnContext(ctx, "Invalid request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
		return
	}

	var upErr *types.UpstreamError
	if errors.As(err, &upErr) {
		status := upErr.HTTPStatus()
		l.WarnContext(ctx, "Upstream request failed",
			slog.Int("status_code", status),
			slog.String("message", upErr.Message))
		api.WriteJSONResponse(w, r, status, types.UpstreamErrorResponse{
			Success:    false,
			Error:      upstreamMsg,
			StatusCode: status,
			Message:    upErr.Message,
			RequestID:  middleware.GetReqID(ctx),
		})
		return
	}

	l.ErrorContext(ctx, "Unexpected error", slog.Any("error", err))
	api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
}
