package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/urban-guide/config"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

func signWith(t *testing.T, cfg config.JWTConfig, user *types.User, now time.Time) string {
	t.Helper()
	tok, err := signAccessToken(user, cfg, now)
	require.NoError(t, err)
	return tok
}

func serveAuthenticated(header string) (*httptest.ResponseRecorder, string) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	Authenticate(discardLogger(), testJWT)(next).ServeHTTP(rr, req)
	return rr, seen
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestAuthenticate(t *testing.T) {
	user := &types.User{ID: uuid.New(), Username: "ana", Email: "ana@example.com"}

	t.Run("ValidToken", func(t *testing.T) {
		rr, seen := serveAuthenticated("Bearer " + signWith(t, testJWT, user, time.Now()))
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, user.ID.String(), seen)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rr, _ := serveAuthenticated("")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Authorization header required", errorMessage(t, rr))
	})

	t.Run("WrongScheme", func(t *testing.T) {
		rr, _ := serveAuthenticated("Basic abc")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Expired", func(t *testing.T) {
		rr, _ := serveAuthenticated("Bearer " + signWith(t, testJWT, user, time.Now().Add(-time.Hour)))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Token has expired", errorMessage(t, rr))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := testJWT
		other.SecretKey = "another-secret"
		rr, _ := serveAuthenticated("Bearer " + signWith(t, other, user, time.Now()))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token signature", errorMessage(t, rr))
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		other := testJWT
		other.Issuer = "someone-else"
		rr, _ := serveAuthenticated("Bearer " + signWith(t, other, user, time.Now()))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token issuer", errorMessage(t, rr))
	})

	t.Run("WrongAudience", func(t *testing.T) {
		other := testJWT
		other.Audience = "other-app"
		rr, _ := serveAuthenticated("Bearer " + signWith(t, other, user, time.Now()))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token audience", errorMessage(t, rr))
	})

	t.Run("NoneAlgorithmRejected", func(t *testing.T) {
		claims := types.Claims{
			UserID: user.ID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testJWT.Issuer,
				Audience:  jwt.ClaimStrings{testJWT.Audience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		rr, _ := serveAuthenticated("Bearer " + tok)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserUUIDFromContext(t *testing.T) {
	id := uuid.New()

	got, err := UserUUIDFromContext(ContextWithUserID(context.Background(), id.String()))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = UserUUIDFromContext(context.Background())
	assert.ErrorIs(t, err, types.ErrUnauthenticated)

	_, err = UserUUIDFromContext(ContextWithUserID(context.Background(), "not-a-uuid"))
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}
