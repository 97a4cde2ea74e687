package schedule

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

	"github.com/FACorreiaa/urban-guide/internal/types"
)

const defaultTitle = "My Trip"

var (
	ErrNoSchedule    = fmt.Errorf("no schedule: %w", types.ErrNotFound)
	ErrVenueNotFound = fmt.Errorf("venue not in schedule: %w", types.ErrNotFound)
)

var _ ScheduleService = (*ScheduleServiceImpl)(nil)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, userID uuid.UUID, req types.CreateScheduleRequest) (*types.CreateScheduleResponse, error)
	GetActiveSchedule(ctx context.Context, userID uuid.UUID) (*types.ActiveScheduleResponse, error)
	GetNextVenue(ctx context.Context, userID uuid.UUID) (*types.NextVenueResponse, error)
	CheckIn(ctx context.Context, userID uuid.UUID, req types.CheckInRequest) error
	CheckOut(ctx context.Context, userID uuid.UUID, req types.CheckOutRequest) error
	History(ctx context.Context, userID uuid.UUID) ([]types.ScheduleHistoryItem, error)
}

type ScheduleServiceImpl struct {
	logger *slog.Logger
	repo   ScheduleRepo
	now    func() time.Time
}

func NewScheduleService(repo ScheduleRepo, logger *slog.Logger) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, userID uuid.UUID, req types.CreateScheduleRequest) (*types.CreateScheduleResponse, error) {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "CreateSchedule", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.Int("schedule.entries", len(req.Schedule)),
	))
	defer span.End()

	if len(req.Schedule) == 0 {
		return nil, types.NewValidationError("schedule", "must contain at least one entry")
	}
	for i, e := range req.Schedule {
		if (e.Type == types.EntryTypeVenue && e.Venue == nil) || (e.Type == types.EntryTypeTravel && e.Travel == nil) {
			return nil, types.NewValidationError("schedule", "entry %d is incomplete", i)
		}
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle
	}

	id, err := s.repo.CreateSchedule(ctx, userID, title, req.Schedule)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create schedule")
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.logger.InfoContext(ctx, "Schedule created",
		slog.String("userID", userID.String()),
		slog.String("scheduleID", id.String()),
		slog.Int("entries", len(req.Schedule)))
	span.SetStatus(codes.Ok, "Schedule created")
	return &types.CreateScheduleResponse{
		Message:    "Schedule created successfully",
		ScheduleID: id,
	}, nil
}

func (s *ScheduleServiceImpl) GetActiveSchedule(ctx context.Context, userID uuid.UUID) (*types.ActiveScheduleResponse, error) {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "GetActiveSchedule", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	sch, err := s.activeSchedule(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get active schedule")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Active schedule retrieved")
	return &types.ActiveScheduleResponse{
		ScheduleID:    sch.ScheduleID,
		Title:         sch.Title,
		Schedule:      sch.Entries,
		VisitedVenues: sch.VisitedVenues,
	}, nil
}

func (s *ScheduleServiceImpl) GetNextVenue(ctx context.Context, userID uuid.UUID) (*types.NextVenueResponse, error) {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "GetNextVenue", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	sch, err := s.activeSchedule(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get next venue")
		return nil, err
	}

	next := NextVenue(sch.Entries)
	if next == nil {
		span.SetStatus(codes.Ok, "All venues visited")
		return &types.NextVenueResponse{Message: "All venues have been visited."}, nil
	}
	id := sch.ScheduleID
	span.SetStatus(codes.Ok, "Next venue found")
	return &types.NextVenueResponse{NextVenue: next, ScheduleID: &id}, nil
}

func (s *ScheduleServiceImpl) CheckIn(ctx context.Context, userID uuid.UUID, req types.CheckInRequest) error {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "CheckIn", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("venue.name", req.VenueName),
		attribute.String("venue.place_id", req.PlaceID),
	))
	defer span.End()

	upd, err := s.visitUpdate(req.VenueName, req.PlaceID, req.StartTime, "start_time", req.ScheduleID)
	if err != nil {
		return err
	}

	err = s.repo.UpdateSchedule(ctx, userID, upd.ScheduleID, func(sch *types.Schedule) error {
		idx := FindVenue(sch.Entries, upd.PlaceID, upd.VenueName)
		if idx < 0 {
			return ErrVenueNotFound
		}
		StartVisit(sch.Entries, idx, upd.At.Format(time.RFC3339))
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Check-in failed")
		return s.visitError(err)
	}
	s.logger.InfoContext(ctx, "Visit started",
		slog.String("userID", userID.String()),
		slog.String("venue", upd.VenueName),
		slog.String("placeID", upd.PlaceID))
	span.SetStatus(codes.Ok, "Visit started")
	return nil
}

func (s *ScheduleServiceImpl) CheckOut(ctx context.Context, userID uuid.UUID, req types.CheckOutRequest) error {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "CheckOut", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("venue.name", req.VenueName),
		attribute.String("venue.place_id", req.PlaceID),
	))
	defer span.End()

	upd, err := s.visitUpdate(req.VenueName, req.PlaceID, req.EndTime, "end_time", req.ScheduleID)
	if err != nil {
		return err
	}

	err = s.repo.UpdateSchedule(ctx, userID, upd.ScheduleID, func(sch *types.Schedule) error {
		idx := FindVenue(sch.Entries, upd.PlaceID, upd.VenueName)
		if idx < 0 {
			return ErrVenueNotFound
		}
		sch.VisitedVenues = append(sch.VisitedVenues, EndVisit(sch.Entries, idx, upd.At.Format(time.RFC3339)))
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Check-out failed")
		return s.visitError(err)
	}
	s.logger.InfoContext(ctx, "Visit ended",
		slog.String("userID", userID.String()),
		slog.String("venue", upd.VenueName),
		slog.String("placeID", upd.PlaceID))
	span.SetStatus(codes.Ok, "Visit ended")
	return nil
}

func (s *ScheduleServiceImpl) History(ctx context.Context, userID uuid.UUID) ([]types.ScheduleHistoryItem, error) {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "History", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	list, err := s.repo.ListSchedules(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list schedules")
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	items := make([]types.ScheduleHistoryItem, 0, len(list))
	for _, sch := range list {
		items = append(items, types.ScheduleHistoryItem{
			ScheduleID: sch.ScheduleID,
			Title:      sch.Title,
			IsActive:   sch.IsActive,
			CreatedAt:  sch.CreatedAt,
			Schedule:   sch.Entries,
		})
	}
	span.SetAttributes(attribute.Int("schedules.count", len(items)))
	span.SetStatus(codes.Ok, "History retrieved")
	return items, nil
}

func (s *ScheduleServiceImpl) activeSchedule(ctx context.Context, userID uuid.UUID) (*types.Schedule, error) {
	sch, err := s.repo.GetActiveSchedule(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, ErrNoSchedule
		}
		return nil, fmt.Errorf("failed to get active schedule: %w", err)
	}
	return sch, nil
}

// visitUpdate validates the common part of check-in and check-out requests.
func (s *ScheduleServiceImpl) visitUpdate(name, placeID string, at *string, timeField, scheduleID string) (*types.VisitUpdate, error) {
	upd := &types.VisitUpdate{
		VenueName: strings.TrimSpace(name),
		PlaceID:   strings.TrimSpace(placeID),
		At:        s.now().UTC(),
	}
	if upd.VenueName == "" && upd.PlaceID == "" {
		return nil, types.NewValidationError("venue_name", "venue_name or place_id is required")
	}
	if at != nil && *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return nil, types.NewValidationError(timeField, "must be an RFC3339 timestamp")
		}
		upd.At = t.UTC()
	}
	if scheduleID != "" {
		id, err := uuid.Parse(scheduleID)
		if err != nil {
			return nil, types.NewValidationError("schedule_id", "must be a UUID")
		}
		upd.ScheduleID = &id
	}
	return upd, nil
}

func (s *ScheduleServiceImpl) visitError(err error) error {
	switch {
	case errors.Is(err, ErrVenueNotFound):
		return ErrVenueNotFound
	case errors.Is(err, types.ErrNotFound):
		return ErrNoSchedule
	default:
		return fmt.Errorf("failed to update schedule: %w", err)
	}
}
