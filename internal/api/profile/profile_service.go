package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

var _ ProfileService = (*ProfileServiceImpl)(nil)

type ProfileService interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req types.CreateProfileRequest) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) (*types.UserProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error)
}

type ProfileServiceImpl struct {
	logger *slog.Logger
	repo   ProfileRepo
}

func NewProfileService(repo ProfileRepo, logger *slog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ProfileServiceImpl) CreateProfile(ctx context.Context, userID uuid.UUID, req types.CreateProfileRequest) (*types.UserProfile, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "CreateProfile", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, types.NewValidationError("name", "is required")
	}

	p, err := s.repo.CreateProfile(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create profile")
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.logger.InfoContext(ctx, "Profile created", slog.String("userID", userID.String()))
	span.SetStatus(codes.Ok, "Profile created")
	return p, nil
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) (*types.UserProfile, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "UpdateProfile", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, types.NewValidationError("name", "must not be empty")
		}
		req.Name = &name
	}

	p, err := s.repo.UpdateProfile(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	span.SetStatus(codes.Ok, "Profile updated")
	return p, nil
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "GetProfile", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	span.SetStatus(codes.Ok, "Profile retrieved")
	return p, nil
}
