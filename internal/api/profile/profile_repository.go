package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/urban-guide/app/db"
	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

var _ ProfileRepo = (*PostgresProfileRepo)(nil)

// ProfileRepo persists the optional per-user profile row.
type ProfileRepo interface {
	// CreateProfile returns types.ErrConflict if the user already has a profile.
	CreateProfile(ctx context.Context, userID uuid.UUID, req types.CreateProfileRequest) (*types.UserProfile, error)
	// UpdateProfile changes the non-nil fields. Returns types.ErrNotFound if there is no profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileRequest) (*types.UserProfile, error)
	// GetProfile joins the account with its profile, if any. Returns types.ErrNotFound for an unknown user.
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error)
}

type PostgresProfileRepo struct {
	logger  *slog.Logger
	pgpool  database.Querier
	metrics *metrics.AppMetrics
}

func NewPostgresProfileRepo(pgpool database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *PostgresProfileRepo {
	return &PostgresProfileRepo{
		logger:  logger,
		pgpool:  pgpool,
		metrics: m,
	}
}

func (r *PostgresProfileRepo) CreateProfile(ctx context.Context, userID uuid.UUID, req types.CreateProfileRequest) (p *types.UserProfile, err error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "CreateProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "user_profiles"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_profiles.insert", time.Now(), &err)

	var out types.UserProfile
	err = r.pgpool.QueryRow(ctx,
		`INSERT INTO user_profiles (user_id, name, picture_url)
		 VALUES ($1, $2, $3)
		 RETURNING user_id, name, picture_url, created_at, updated_at`,
		userID, req.Name, req.PictureURL).Scan(&out.UserID, &out.Name, &out.PictureURL, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("profile for user %s: %w", userID, types.ErrConflict)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return &out, nil
}

func (r *PostgresProfileRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileRequest) (p *types.UserProfile, err error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "UpdateProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "user_profiles"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_profiles.update", time.Now(), &err)

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *params.Name)
		argID++
		span.SetAttributes(attribute.Bool("update.name", true))
	}
	if params.PictureURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("picture_url = $%d", argID))
		args = append(args, *params.PictureURL)
		argID++
		span.SetAttributes(attribute.Bool("update.picture_url", true))
	}
	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE user_id = $%d
		 RETURNING user_id, name, picture_url, created_at, updated_at`,
		strings.Join(setClauses, ", "), argID)

	var out types.UserProfile
	err = r.pgpool.QueryRow(ctx, query, args...).
		Scan(&out.UserID, &out.Name, &out.PictureURL, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, types.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &out, nil
}

func (r *PostgresProfileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (p *types.ProfileResponse, err error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "GetProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_profiles.select", time.Now(), &err)

	var out types.ProfileResponse
	err = r.pgpool.QueryRow(ctx,
		`SELECT u.username, u.email, p.name, p.picture_url
		 FROM users u
		 LEFT JOIN user_profiles p ON p.user_id = u.id
		 WHERE u.id = $1`, userID).Scan(&out.Username, &out.Email, &out.Name, &out.PictureURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &out, nil
}
