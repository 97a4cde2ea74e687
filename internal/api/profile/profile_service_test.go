package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

// MockProfileRepo is a mock implementation of ProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) CreateProfile(ctx context.Context, userID uuid.UUID, req types.CreateProfileRequest) (*types.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, params types.UpdateProfileRequest) (*types.UserProfile, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileResponse), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func setupProfileServiceTest() (*ProfileServiceImpl, *MockProfileRepo) {
	repo := new(MockProfileRepo)
	return NewProfileService(repo, discardLogger()), repo
}

func TestProfileService_CreateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("TrimsName", func(t *testing.T) {
		service, repo := setupProfileServiceTest()
		repo.On("CreateProfile", mock.Anything, userID, types.CreateProfileRequest{Name: "Ana"}).
			Return(&types.UserProfile{UserID: userID, Name: "Ana"}, nil).Once()

		p, err := service.CreateProfile(ctx, userID, types.CreateProfileRequest{Name: "  Ana "})
		require.NoError(t, err)
		assert.Equal(t, "Ana", p.Name)
		repo.AssertExpectations(t)
	})

	t.Run("NameRequired", func(t *testing.T) {
		service, repo := setupProfileServiceTest()

		_, err := service.CreateProfile(ctx, userID, types.CreateProfileRequest{Name: " "})
		assert.ErrorIs(t, err, types.ErrValidation)
		repo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		service, repo := setupProfileServiceTest()
		repo.On("CreateProfile", mock.Anything, userID, mock.Anything).Return(nil, types.ErrConflict).Once()

		_, err := service.CreateProfile(ctx, userID, types.CreateProfileRequest{Name: "Ana"})
		assert.ErrorIs(t, err, types.ErrConflict)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("PartialUpdate", func(t *testing.T) {
		service, repo := setupProfileServiceTest()
		pic := strPtr("https://img/ana.png")
		repo.On("UpdateProfile", mock.Anything, userID, types.UpdateProfileRequest{PictureURL: pic}).
			Return(&types.UserProfile{UserID: userID, Name: "Ana", PictureURL: pic}, nil).Once()

		p, err := service.UpdateProfile(ctx, userID, types.UpdateProfileRequest{PictureURL: pic})
		require.NoError(t, err)
		assert.Equal(t, "Ana", p.Name)
		repo.AssertExpectations(t)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		service, _ := setupProfileServiceTest()
		_, err := service.UpdateProfile(ctx, userID, types.UpdateProfileRequest{Name: strPtr("")})
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("Missing", func(t *testing.T) {
		service, repo := setupProfileServiceTest()
		repo.On("UpdateProfile", mock.Anything, userID, mock.Anything).Return(nil, types.ErrNotFound).Once()

		_, err := service.UpdateProfile(ctx, userID, types.UpdateProfileRequest{Name: strPtr("Ana")})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestProfileService_GetProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	service, repo := setupProfileServiceTest()

	repo.On("GetProfile", mock.Anything, userID).Return(&types.ProfileResponse{Username: "ana", Email: "ana@example.com"}, nil).Once()
	p, err := service.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, p.Name)

	repo.On("GetProfile", mock.Anything, userID).Return(nil, errors.New("timeout")).Once()
	_, err = service.GetProfile(ctx, userID)
	assert.Error(t, err)
}
