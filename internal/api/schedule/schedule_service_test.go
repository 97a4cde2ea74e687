package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/urban-guide/internal/types"
)

// MockScheduleRepo is a mock implementation of ScheduleRepo. UpdateSchedule
// applies fn to the schedule configured as its first return value.
type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) CreateSchedule(ctx context.Context, userID uuid.UUID, title string, entries []types.ItineraryEntry) (uuid.UUID, error) {
	args := m.Called(ctx, userID, title, entries)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockScheduleRepo) GetActiveSchedule(ctx context.Context, userID uuid.UUID) (*types.Schedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Schedule), args.Error(1)
}

func (m *MockScheduleRepo) ListSchedules(ctx context.Context, userID uuid.UUID) ([]types.Schedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Schedule), args.Error(1)
}

func (m *MockScheduleRepo) UpdateSchedule(ctx context.Context, userID uuid.UUID, scheduleID *uuid.UUID, fn func(*types.Schedule) error) error {
	args := m.Called(ctx, userID, scheduleID)
	if sch, ok := args.Get(0).(*types.Schedule); ok && sch != nil {
		if err := fn(sch); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.FixedZone("EEST", 3*60*60))

func setupScheduleServiceTest() (*ScheduleServiceImpl, *MockScheduleRepo) {
	repo := new(MockScheduleRepo)
	svc := NewScheduleService(repo, discardLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func activeSchedule(userID uuid.UUID) *types.Schedule {
	return &types.Schedule{
		ScheduleID:    uuid.New(),
		UserID:        userID,
		Title:         "Bucharest",
		Entries:       sampleEntries(),
		VisitedVenues: []types.VisitedVenue{},
		IsActive:      true,
	}
}

func TestScheduleService_CreateSchedule(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("DefaultTitle", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		id := uuid.New()
		entries := sampleEntries()
		repo.On("CreateSchedule", mock.Anything, userID, "My Trip", entries).Return(id, nil).Once()

		resp, err := svc.CreateSchedule(ctx, userID, types.CreateScheduleRequest{Title: "  ", Schedule: entries})
		require.NoError(t, err)
		assert.Equal(t, id, resp.ScheduleID)
		assert.Equal(t, "Schedule created successfully", resp.Message)
		repo.AssertExpectations(t)
	})

	t.Run("KeepsTitle", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("CreateSchedule", mock.Anything, userID, "Weekend", mock.Anything).Return(uuid.New(), nil).Once()

		_, err := svc.CreateSchedule(ctx, userID, types.CreateScheduleRequest{Title: "Weekend", Schedule: sampleEntries()})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("EmptySchedule", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()

		_, err := svc.CreateSchedule(ctx, userID, types.CreateScheduleRequest{})
		assert.ErrorIs(t, err, types.ErrValidation)
		repo.AssertNotCalled(t, "CreateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("IncompleteEntry", func(t *testing.T) {
		svc, _ := setupScheduleServiceTest()

		_, err := svc.CreateSchedule(ctx, userID, types.CreateScheduleRequest{
			Schedule: []types.ItineraryEntry{{Type: types.EntryTypeVenue}},
		})
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("RepoFailure", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("CreateSchedule", mock.Anything, userID, "My Trip", mock.Anything).Return(uuid.Nil, errors.New("db down")).Once()

		_, err := svc.CreateSchedule(ctx, userID, types.CreateScheduleRequest{Schedule: sampleEntries()})
		require.Error(t, err)
		assert.NotErrorIs(t, err, types.ErrValidation)
	})
}

func TestScheduleService_GetActiveSchedule(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		repo.On("GetActiveSchedule", mock.Anything, userID).Return(sch, nil).Once()

		resp, err := svc.GetActiveSchedule(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, sch.ScheduleID, resp.ScheduleID)
		assert.Equal(t, "Bucharest", resp.Title)
		assert.Len(t, resp.Schedule, 5)
		assert.NotNil(t, resp.VisitedVenues)
	})

	t.Run("None", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("GetActiveSchedule", mock.Anything, userID).Return(nil, types.ErrNotFound).Once()

		_, err := svc.GetActiveSchedule(ctx, userID)
		assert.ErrorIs(t, err, ErrNoSchedule)
	})
}

func TestScheduleService_GetNextVenue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Next", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		sch.Entries[0].Venue.VisitEndTime = strPtr("2026-10-19T10:00:00Z")
		repo.On("GetActiveSchedule", mock.Anything, userID).Return(sch, nil).Once()

		resp, err := svc.GetNextVenue(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, resp.NextVenue)
		assert.Equal(t, "p2", resp.NextVenue.Venue.PlaceID)
		assert.Equal(t, sch.ScheduleID, *resp.ScheduleID)
		assert.Empty(t, resp.Message)
	})

	t.Run("AllVisited", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		for i := range sch.Entries {
			if sch.Entries[i].Venue != nil {
				sch.Entries[i].Venue.VisitEndTime = strPtr("2026-10-19T10:00:00Z")
			}
		}
		repo.On("GetActiveSchedule", mock.Anything, userID).Return(sch, nil).Once()

		resp, err := svc.GetNextVenue(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, resp.NextVenue)
		assert.Nil(t, resp.ScheduleID)
		assert.Equal(t, "All venues have been visited.", resp.Message)
	})

	t.Run("NoActiveSchedule", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("GetActiveSchedule", mock.Anything, userID).Return(nil, types.ErrNotFound).Once()

		_, err := svc.GetNextVenue(ctx, userID)
		assert.ErrorIs(t, err, ErrNoSchedule)
	})
}

func TestScheduleService_CheckIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("DefaultsToNowUTC", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		repo.On("UpdateSchedule", mock.Anything, userID, (*uuid.UUID)(nil)).Return(sch, nil).Once()

		require.NoError(t, svc.CheckIn(ctx, userID, types.CheckInRequest{VenueName: "Old Town"}))
		require.NotNil(t, sch.Entries[2].Venue.VisitStartTime)
		assert.Equal(t, "2026-10-19T05:30:00Z", *sch.Entries[2].Venue.VisitStartTime)
		assert.Nil(t, sch.Entries[4].Venue.VisitStartTime)
		repo.AssertExpectations(t)
	})

	t.Run("ExplicitTimeAndSchedule", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		id := sch.ScheduleID
		repo.On("UpdateSchedule", mock.Anything, userID, &id).Return(sch, nil).Once()

		err := svc.CheckIn(ctx, userID, types.CheckInRequest{
			PlaceID:    "p3",
			StartTime:  strPtr("2026-10-19T14:00:00+02:00"),
			ScheduleID: id.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-10-19T12:00:00Z", *sch.Entries[4].Venue.VisitStartTime)
	})

	t.Run("VenueNotFound", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("UpdateSchedule", mock.Anything, userID, (*uuid.UUID)(nil)).Return(activeSchedule(userID), nil).Once()

		err := svc.CheckIn(ctx, userID, types.CheckInRequest{VenueName: "Louvre"})
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("NoSchedule", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("UpdateSchedule", mock.Anything, userID, (*uuid.UUID)(nil)).
			Return(nil, errors.Join(errors.New("schedule"), types.ErrNotFound)).Once()

		err := svc.CheckIn(ctx, userID, types.CheckInRequest{VenueName: "Old Town"})
		assert.ErrorIs(t, err, ErrNoSchedule)
		assert.NotErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name string
			req  types.CheckInRequest
		}{
			{"NoVenue", types.CheckInRequest{}},
			{"BadTime", types.CheckInRequest{VenueName: "Old Town", StartTime: strPtr("9am")}},
			{"BadScheduleID", types.CheckInRequest{VenueName: "Old Town", ScheduleID: "42"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, repo := setupScheduleServiceTest()
				err := svc.CheckIn(ctx, userID, tt.req)
				assert.ErrorIs(t, err, types.ErrValidation)
				repo.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}

func TestScheduleService_CheckOut(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("RecordsVisitedVenue", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		sch.Entries[0].Venue.VisitStartTime = strPtr("2026-10-19T04:00:00Z")
		repo.On("UpdateSchedule", mock.Anything, userID, (*uuid.UUID)(nil)).Return(sch, nil).Once()

		require.NoError(t, svc.CheckOut(ctx, userID, types.CheckOutRequest{VenueName: "Herastrau Park"}))
		assert.Equal(t, "2026-10-19T05:30:00Z", *sch.Entries[0].Venue.VisitEndTime)
		require.Len(t, sch.VisitedVenues, 1)
		assert.Equal(t, types.VisitedVenue{
			PlaceID:        "p1",
			Name:           "Herastrau Park",
			VisitStartTime: strPtr("2026-10-19T04:00:00Z"),
			VisitEndTime:   strPtr("2026-10-19T05:30:00Z"),
		}, sch.VisitedVenues[0])
	})

	t.Run("VenueNotFoundLeavesVisitedUntouched", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		sch := activeSchedule(userID)
		repo.On("UpdateSchedule", mock.Anything, userID, (*uuid.UUID)(nil)).Return(sch, nil).Once()

		err := svc.CheckOut(ctx, userID, types.CheckOutRequest{PlaceID: "missing"})
		assert.ErrorIs(t, err, ErrVenueNotFound)
		assert.Empty(t, sch.VisitedVenues)
	})

	t.Run("BadEndTime", func(t *testing.T) {
		svc, _ := setupScheduleServiceTest()
		err := svc.CheckOut(ctx, userID, types.CheckOutRequest{VenueName: "Old Town", EndTime: strPtr("2026-10-19 10:00")})
		var vErr *types.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "end_time", vErr.Field)
	})
}

func TestScheduleService_History(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Items", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		newer, older := activeSchedule(userID), activeSchedule(userID)
		older.IsActive = false
		repo.On("ListSchedules", mock.Anything, userID).Return([]types.Schedule{*newer, *older}, nil).Once()

		items, err := svc.History(ctx, userID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, newer.ScheduleID, items[0].ScheduleID)
		assert.True(t, items[0].IsActive)
		assert.False(t, items[1].IsActive)
	})

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		svc, repo := setupScheduleServiceTest()
		repo.On("ListSchedules", mock.Anything, userID).Return([]types.Schedule{}, nil).Once()

		items, err := svc.History(ctx, userID)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}
