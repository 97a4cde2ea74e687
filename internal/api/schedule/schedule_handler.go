package schedule

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/urban-guide/internal/api"
	"github.com/FACorreiaa/urban-guide/internal/api/auth"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

type ScheduleHandler struct {
	service ScheduleService
	logger  *slog.Logger
}

func NewScheduleHandler(service ScheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger,
	}
}

// CreateSchedule godoc
// @Summary      Save an itinerary as the active schedule
// @Description  Deactivates every other schedule of the user.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.CreateScheduleRequest true "Itinerary entries"
// @Success      201 {object} types.CreateScheduleResponse
// @Failure      400 {object} api.Response
// @Failure      401 {object} api.Response
// @Router       /schedule [post]
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ScheduleHandler").Start(r.Context(), "CreateSchedule", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/schedule"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "CreateSchedule"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID.String()))

	var req types.CreateScheduleRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.CreateSchedule(ctx, userID, req)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// GetActiveSchedule godoc
// @Summary      Active schedule
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} types.ActiveScheduleResponse
// @Failure      404 {object} api.Response
// @Router       /schedule/active [get]
func (h *ScheduleHandler) GetActiveSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ScheduleHandler").Start(r.Context(), "GetActiveSchedule", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/schedule/active"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetActiveSchedule"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp, err := h.service.GetActiveSchedule(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoSchedule) {
			api.ErrorResponse(w, r, http.StatusNotFound, "No active schedule found")
			return
		}
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetNextVenue godoc
// @Summary      Next venue to visit
// @Description  First venue of the active schedule that is in progress or not yet visited.
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} types.NextVenueResponse
// @Failure      404 {object} api.Response
// @Router       /schedule/next-venue [get]
func (h *ScheduleHandler) GetNextVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ScheduleHandler").Start(r.Context(), "GetNextVenue", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/schedule/next-venue"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetNextVenue"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp, err := h.service.GetNextVenue(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoSchedule) {
			api.ErrorResponse(w, r, http.StatusNotFound, "No active schedule found")
			return
		}
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// CheckIn godoc
// @Summary      Start a visit
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.CheckInRequest true "Venue and optional start time"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /schedule/check-in [post]
func (h *ScheduleHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ScheduleHandler").Start(r.Context(), "CheckIn", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/schedule/check-in"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "CheckIn"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.CheckInRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CheckIn(ctx, userID, req); err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.MessageResponse{Message: "Visit started successfully"})
}

// CheckOut godoc
// @Summary      End a visit
// @Description  Also records the venue in visited_venues.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.CheckOutRequest true "Venue and optional end time"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /schedule/check-out [post]
func (h *ScheduleHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ScheduleHandler").Start(r.Context(), "CheckOut", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/schedule/check-out"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "CheckOut"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.CheckOutRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CheckOut(ctx, userID, req); err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.MessageResponse{Message: "Visit ended successfully"})
}

// History godoc
// @Summary      All schedules of the user
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} types.ScheduleHistoryItem
// @Router       /schedule/history [get]
func (h *ScheduleHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ScheduleHandler").Start(r.Context(), "History", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/schedule/history"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "History"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.service.History(ctx, userID)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

func (h *ScheduleHandler) writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	var vErr *types.ValidationError
	switch {
	case errors.As(err, &vErr):
		api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, ErrVenueNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Venue not found in schedule")
	case errors.Is(err, ErrNoSchedule):
		api.ErrorResponse(w, r, http.StatusNotFound, "No schedule found")
	default:
		l.ErrorContext(r.Context(), "Schedule operation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
