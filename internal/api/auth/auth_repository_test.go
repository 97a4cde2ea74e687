package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

func setupAuthRepoTest(t *testing.T) (*AuthRepoFactory, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewAuthRepoFactory(mockPool, nil, discardLogger()), mockPool
}

func TestAuthRepo_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		id := uuid.New()
		now := time.Now()

		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs("ana", "ana@example.com", "hash").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

		user, err := repo.CreateUser(ctx, "ana", "ana@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "ana", user.Username)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs("ana", "", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		_, err := repo.CreateUser(ctx, "ana", "", "hash")
		assert.ErrorIs(t, err, types.ErrConflict)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestAuthRepo_GetUserByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		id := uuid.New()
		now := time.Now()
		mockPool.ExpectQuery(`SELECT id, username, email, password_hash, created_at, updated_at\s+FROM users WHERE username = \$1`).
			WithArgs("ana").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
				AddRow(id, "ana", "ana@example.com", "hash", now, now))

		user, err := repo.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		mockPool.ExpectQuery(`FROM users WHERE username`).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetUserByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestAuthRepo_GetRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := setupAuthRepoTest(t)
	id, userID := uuid.New(), uuid.New()
	exp := time.Now().Add(time.Hour)

	mockPool.ExpectQuery(`SELECT id, user_id, token, expires_at, revoked_at`).
		WithArgs("tok").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "token", "expires_at", "revoked_at"}).
			AddRow(id, userID, "tok", exp, (*time.Time)(nil)))

	rt, err := repo.GetRefreshToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, userID, rt.UserID)
	assert.Nil(t, rt.RevokedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestAuthRepo_RotateRefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	exp := time.Now().Add(time.Hour)

	t.Run("Commits", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		mockPool.ExpectBegin()
		mockPool.ExpectExec(`UPDATE refresh_tokens SET revoked_at = now\(\)`).
			WithArgs("old", userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectExec(`INSERT INTO refresh_tokens`).
			WithArgs(userID, "new", exp).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockPool.ExpectCommit()

		require.NoError(t, repo.RotateRefreshToken(ctx, "old", userID, "new", exp))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("AlreadyRevokedRollsBack", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		mockPool.ExpectBegin()
		mockPool.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
			WithArgs("old", userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mockPool.ExpectRollback()

		err := repo.RotateRefreshToken(ctx, "old", userID, "new", exp)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("InsertFailureRollsBack", func(t *testing.T) {
		repo, mockPool := setupAuthRepoTest(t)
		mockPool.ExpectBegin()
		mockPool.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
			WithArgs("old", userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectExec(`INSERT INTO refresh_tokens`).
			WithArgs(userID, "new", exp).
			WillReturnError(errors.New("disk full"))
		mockPool.ExpectRollback()

		err := repo.RotateRefreshToken(ctx, "old", userID, "new", exp)
		require.Error(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestAuthRepo_RevokeRefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo, mockPool := setupAuthRepoTest(t)

	mockPool.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("tok", userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("tok", userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	revoked, err := repo.RevokeRefreshToken(ctx, userID, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.RevokeRefreshToken(ctx, userID, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
