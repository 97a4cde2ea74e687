package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/urban-guide/internal/api"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

type AuthHandler struct {
	AuthService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		AuthService: authService,
	}
}

// Register godoc
// @Summary      Register a user
// @Description  Creates an account and returns a token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body types.RegisterRequest true "Credentials"
// @Success      201 {object} types.RegisterResponse
// @Failure      400 {object} api.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Register", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/auth/register"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "Register"))

	var req types.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.AuthService.Register(ctx, req)
	if err != nil {
		var vErr *types.ValidationError
		switch {
		case errors.As(err, &vErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Username already exists.")
		default:
			l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	span.SetAttributes(semconv.EnduserIDKey.String(resp.UserID.String()))
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// Login godoc
// @Summary      Obtain a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body types.LoginRequest true "Credentials"
// @Success      200 {object} types.TokenPair
// @Failure      401 {object} api.Response
// @Router       /auth/token [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/auth/token"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		var vErr *types.ValidationError
		switch {
		case errors.As(err, &vErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, types.ErrUnauthenticated):
			api.ErrorResponse(w, r, http.StatusUnauthorized, "No active account found with the given credentials")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Authentication failed")
		}
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, tokens)
}

// RefreshToken godoc
// @Summary      Rotate a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body types.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} types.TokenPair
// @Failure      401 {object} api.Response
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "RefreshToken", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/auth/token/refresh"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "RefreshToken"))

	var req types.RefreshTokenRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.AuthService.RefreshSession(ctx, req.Refresh)
	if err != nil {
		var vErr *types.ValidationError
		switch {
		case errors.As(err, &vErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, types.ErrUnauthenticated):
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Token is invalid or expired")
		default:
			l.ErrorContext(ctx, "Refresh failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to refresh session")
		}
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, tokens)
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.LogoutRequest true "Refresh token"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Logout", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/auth/logout"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "Logout"))

	userID, err := UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID.String()))

	var req types.LogoutRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.AuthService.Logout(ctx, userID, req.Refresh); err != nil {
		var vErr *types.ValidationError
		if errors.As(err, &vErr) {
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
			return
		}
		l.ErrorContext(ctx, "Logout failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to logout")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
}

// Protected godoc
// @Summary      Authenticated greeting
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.MessageResponse
// @Failure      401 {object} api.Response
// @Router       /auth/protected [get]
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := UserUUIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.AuthService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "User no longer exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.MessageResponse{
		Message: fmt.Sprintf("Hello, %s! This is a protected endpoint.", user.Username),
	})
}
