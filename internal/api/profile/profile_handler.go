package profile

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

type ProfileHandler struct {
	service ProfileService
	logger  *slog.Logger
}

func NewProfileHandler(service ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProfile godoc
// @Summary      Create profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.CreateProfileRequest true "Profile"
// @Success      201 {object} types.UserProfile
// @Failure      400 {object} api.Response
// @Failure      409 {object} api.Response
// @Router       /profile [post]
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "CreateProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profile"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "CreateProfile"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID.String()))

	var req types.CreateProfileRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.CreateProfile(ctx, userID, req)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, p)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Partial update; omitted fields are kept.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.UpdateProfileRequest true "Fields to change"
// @Success      200 {object} types.UserProfile
// @Failure      404 {object} api.Response
// @Router       /profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "UpdateProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profile"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "UpdateProfile"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID.String()))

	var req types.UpdateProfileRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.UpdateProfile(ctx, userID, req)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// GetProfile godoc
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} types.ProfileResponse
// @Failure      404 {object} api.Response
// @Router       /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "GetProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profile"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetProfile"))

	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	p, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

func (h *ProfileHandler) writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	var vErr *types.ValidationError
	switch {
	case errors.As(err, &vErr):
		api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, types.ErrConflict):
		api.ErrorResponse(w, r, http.StatusConflict, "Profile already exists")
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Profile not found")
	default:
		l.ErrorContext(r.Context(), "Profile operation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
