package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/urban-guide/config"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

type AuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.RegisterResponse, error)
	Login(ctx context.Context, username, password string) (*types.TokenPair, error)
	RefreshSession(ctx context.Context, refreshToken string) (*types.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type AuthServiceImpl struct {
	logger   *slog.Logger
	repo     AuthRepo
	jwt      config.JWTConfig
	hashCost int
	now      func() time.Time
}

func NewAuthService(repo AuthRepo, jwtCfg config.JWTConfig, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:   logger,
		repo:     repo,
		jwt:      jwtCfg,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates the account and logs it in.
func (s *AuthServiceImpl) Register(ctx context.Context, req types.RegisterRequest) (*types.RegisterResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register", trace.WithAttributes(
		attribute.String("user.username", req.Username),
	))
	defer span.End()

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, &types.ValidationError{Message: "Username and password are required."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, strings.TrimSpace(req.Email), string(hash))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create user failed")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issue failed")
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("user_id", user.ID.String()))
	span.SetStatus(codes.Ok, "User registered")
	return &types.RegisterResponse{
		Message:  "User registered successfully!",
		UserID:   user.ID,
		Username: user.Username,
		Tokens:   *tokens,
	}, nil
}

// Login exchanges credentials for a token pair. Any mismatch is ErrUnauthenticated.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*types.TokenPair, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, &types.ValidationError{Message: "Username and password are required."}
	}

	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUnauthenticated
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Invalid password", slog.String("user_id", user.ID.String()))
		return nil, types.ErrUnauthenticated
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issue failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Logged in")
	return tokens, nil
}

// RefreshSession rotates a valid refresh token: the old one is revoked and a
// new pair is returned.
func (s *AuthServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (*types.TokenPair, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "RefreshSession")
	defer span.End()

	if refreshToken == "" {
		return nil, types.NewValidationError("refresh", "is required")
	}

	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUnauthenticated
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored.RevokedAt != nil || !s.now().Before(stored.ExpiresAt) {
		return nil, types.ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	access, err := signAccessToken(user, s.jwt, s.now())
	if err != nil {
		return nil, err
	}
	next := generateRefreshToken()
	if err := s.repo.RotateRefreshToken(ctx, refreshToken, user.ID, next, s.now().Add(s.jwt.RefreshTokenTTL)); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	span.SetStatus(codes.Ok, "Session refreshed")
	return &types.TokenPair{Refresh: next, Access: access}, nil
}

// Logout revokes one of the user's refresh tokens.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Logout", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	if refreshToken == "" {
		return types.NewValidationError("refresh", "is required")
	}
	revoked, err := s.repo.RevokeRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !revoked {
		return types.NewValidationError("refresh", "token is invalid or already revoked")
	}
	return nil
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "GetUserByID")
	defer span.End()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *types.User) (*types.TokenPair, error) {
	now := s.now()
	access, err := signAccessToken(user, s.jwt, now)
	if err != nil {
		return nil, err
	}
	refresh := generateRefreshToken()
	if err := s.repo.StoreRefreshToken(ctx, user.ID, refresh, now.Add(s.jwt.RefreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &types.TokenPair{Refresh: refresh, Access: access}, nil
}
