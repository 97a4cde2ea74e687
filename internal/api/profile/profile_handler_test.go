package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/urban-guide/internal/api/auth"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, req types.CreateProfileRequest) (*types.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) (*types.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileResponse), args.Error(1)
}

func authedRequest(t *testing.T, method string, userID uuid.UUID, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/profile", &buf)
	return req.WithContext(auth.ContextWithUserID(req.Context(), userID.String()))
}

func TestProfileHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("CreateReturns201", func(t *testing.T) {
		service := new(MockProfileService)
		h := NewProfileHandler(service, discardLogger())
		service.On("CreateProfile", mock.Anything, userID, types.CreateProfileRequest{Name: "Ana"}).
			Return(&types.UserProfile{UserID: userID, Name: "Ana"}, nil).Once()

		w := httptest.NewRecorder()
		h.CreateProfile(w, authedRequest(t, http.MethodPost, userID, types.CreateProfileRequest{Name: "Ana"}))
		assert.Equal(t, http.StatusCreated, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("CreateConflict", func(t *testing.T) {
		service := new(MockProfileService)
		h := NewProfileHandler(service, discardLogger())
		service.On("CreateProfile", mock.Anything, userID, mock.Anything).Return(nil, types.ErrConflict).Once()

		w := httptest.NewRecorder()
		h.CreateProfile(w, authedRequest(t, http.MethodPost, userID, types.CreateProfileRequest{Name: "Ana"}))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		service := new(MockProfileService)
		h := NewProfileHandler(service, discardLogger())
		service.On("UpdateProfile", mock.Anything, userID, mock.Anything).Return(nil, types.ErrNotFound).Once()

		w := httptest.NewRecorder()
		name := "Ana"
		h.UpdateProfile(w, authedRequest(t, http.MethodPut, userID, types.UpdateProfileRequest{Name: &name}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Get", func(t *testing.T) {
		service := new(MockProfileService)
		h := NewProfileHandler(service, discardLogger())
		name := "Ana"
		service.On("GetProfile", mock.Anything, userID).
			Return(&types.ProfileResponse{Username: "ana", Email: "ana@example.com", Name: &name}, nil).Once()

		w := httptest.NewRecorder()
		h.GetProfile(w, authedRequest(t, http.MethodGet, userID, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ana", body["username"])
		assert.Equal(t, "Ana", body["name"])
		assert.NotContains(t, body, "picture_url")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		service := new(MockProfileService)
		h := NewProfileHandler(service, discardLogger())

		w := httptest.NewRecorder()
		h.GetProfile(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		service.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})
}
