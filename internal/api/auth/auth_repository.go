package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

const uniqueViolation = "23505"

var _ AuthRepo = (*AuthRepoFactory)(nil)

type AuthRepo interface {
	// CreateUser inserts a user. Returns types.ErrConflict if the username is taken.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*types.User, error)
	// GetUserByUsername returns types.ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)

	StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*types.RefreshToken, error)
	// RotateRefreshToken revokes oldToken and stores newToken in one transaction.
	// Returns types.ErrUnauthenticated if oldToken was already revoked.
	RotateRefreshToken(ctx context.Context, oldToken string, userID uuid.UUID, newToken string, expiresAt time.Time) error
	// RevokeRefreshToken reports whether an unrevoked token of userID was revoked.
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error)
}

type AuthRepoFactory struct {
	logger  *slog.Logger
	pgpool  database.Querier
	metrics *metrics.AppMetrics
}

func NewAuthRepoFactory(pgpool database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *AuthRepoFactory {
	return &AuthRepoFactory{
		logger:  logger,
		pgpool:  pgpool,
		metrics: m,
	}
}

func (r *AuthRepoFactory) CreateUser(ctx context.Context, username, email, passwordHash string) (user *types.User, err error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "users.insert", time.Now(), &err)

	u := types.User{Username: username, Email: email, PasswordHash: passwordHash}
	err = r.pgpool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		username, email, passwordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("username %q: %w", username, types.ErrConflict)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}

func (r *AuthRepoFactory) GetUserByUsername(ctx context.Context, username string) (user *types.User, err error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByUsername", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "users.select", time.Now(), &err)

	var u types.User
	err = r.pgpool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &u, nil
}

func (r *AuthRepoFactory) GetUserByID(ctx context.Context, userID uuid.UUID) (user *types.User, err error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "users.select", time.Now(), &err)

	var u types.User
	err = r.pgpool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

func (r *AuthRepoFactory) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (err error) {
	defer database.ObserveQuery(ctx, r.metrics, "refresh_tokens.insert", time.Now(), &err)

	_, err = r.pgpool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at)
		 VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("store refresh token: db insert failed: %w", err)
	}
	return nil
}

func (r *AuthRepoFactory) GetRefreshToken(ctx context.Context, token string) (rt *types.RefreshToken, err error) {
	defer database.ObserveQuery(ctx, r.metrics, "refresh_tokens.select", time.Now(), &err)

	var t types.RefreshToken
	err = r.pgpool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, revoked_at
		 FROM refresh_tokens
		 WHERE token = $1`, token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("refresh token: %w", types.ErrNotFound)
		}
		return nil, fmt.Errorf("get refresh token: query failed: %w", err)
	}
	return &t, nil
}

func (r *AuthRepoFactory) RotateRefreshToken(ctx context.Context, oldToken string, userID uuid.UUID, newToken string, expiresAt time.Time) (err error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "RotateRefreshToken", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "refresh_tokens"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "refresh_tokens.rotate", time.Now(), &err)

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now()
		 WHERE token = $1 AND user_id = $2 AND revoked_at IS NULL`,
		oldToken, userID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("refresh token already used: %w", types.ErrUnauthenticated)
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at)
		 VALUES ($1, $2, $3)`,
		userID, newToken, expiresAt); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to store new refresh token: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit token rotation: %w", err)
	}
	return nil
}

func (r *AuthRepoFactory) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, token string) (revoked bool, err error) {
	defer database.ObserveQuery(ctx, r.metrics, "refresh_tokens.revoke", time.Now(), &err)

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now()
		 WHERE token = $1 AND user_id = $2 AND revoked_at IS NULL`,
		token, userID)
	if err != nil {
		return false, fmt.Errorf("invalidate refresh token: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "No refresh token found or already revoked", slog.String("user_id", userID.String()))
		return false, nil
	}
	return true, nil
}
