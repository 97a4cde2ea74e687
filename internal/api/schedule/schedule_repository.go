package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/urban-guide/app/db"
	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

var _ ScheduleRepo = (*PostgresScheduleRepo)(nil)

type ScheduleRepo interface {
	// CreateSchedule deactivates the user's other schedules and inserts this
	// one as active, in one transaction.
	CreateSchedule(ctx context.Context, userID uuid.UUID, title string, entries []types.ItineraryEntry) (uuid.UUID, error)
	// GetActiveSchedule returns types.ErrNotFound when the user has none.
	GetActiveSchedule(ctx context.Context, userID uuid.UUID) (*types.Schedule, error)
	// ListSchedules returns every schedule of the user, newest first.
	ListSchedules(ctx context.Context, userID uuid.UUID) ([]types.Schedule, error)
	// UpdateSchedule locks the schedule (by ID, or the active one when scheduleID
	// is nil), applies fn and stores the new entries and visited venues. If fn
	// fails nothing is written. Returns types.ErrNotFound when there is no such
	// schedule owned by the user.
	UpdateSchedule(ctx context.Context, userID uuid.UUID, scheduleID *uuid.UUID, fn func(*types.Schedule) error) error
}

type PostgresScheduleRepo struct {
	logger  *slog.Logger
	pgpool  database.Querier
	metrics *metrics.AppMetrics
}

func NewPostgresScheduleRepo(pgpool database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *PostgresScheduleRepo {
	return &PostgresScheduleRepo{
		logger:  logger,
		pgpool:  pgpool,
		metrics: m,
	}
}

const scheduleColumns = `schedule_id, user_id, title, schedule, visited_venues, is_active, created_at, updated_at`

func scanSchedule(row pgx.Row) (*types.Schedule, error) {
	var s types.Schedule
	var entriesJSON, visitedJSON []byte
	if err := row.Scan(&s.ScheduleID, &s.UserID, &s.Title, &entriesJSON, &visitedJSON, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(entriesJSON, &s.Entries); err != nil {
		return nil, fmt.Errorf("failed to decode schedule %s: %w", s.ScheduleID, err)
	}
	if len(visitedJSON) > 0 {
		if err := json.Unmarshal(visitedJSON, &s.VisitedVenues); err != nil {
			return nil, fmt.Errorf("failed to decode visited venues of %s: %w", s.ScheduleID, err)
		}
	}
	if s.VisitedVenues == nil {
		s.VisitedVenues = []types.VisitedVenue{}
	}
	return &s, nil
}

func (r *PostgresScheduleRepo) CreateSchedule(ctx context.Context, userID uuid.UUID, title string, entries []types.ItineraryEntry) (id uuid.UUID, err error) {
	ctx, span := otel.Tracer("ScheduleRepo").Start(ctx, "CreateSchedule", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_schedules"),
		attribute.String("db.user.id", userID.String()),
		attribute.Int("schedule.entries", len(entries)),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_schedules.create", time.Now(), &err)

	payload, err := json.Marshal(entries)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode schedule: %w", err)
	}

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE user_schedules SET is_active = FALSE, updated_at = now()
		 WHERE user_id = $1 AND is_active`, userID); err != nil {
		_ = tx.Rollback(ctx)
		span.RecordError(err)
		return uuid.Nil, fmt.Errorf("failed to deactivate schedules: %w", err)
	}

	if err = tx.QueryRow(ctx,
		`INSERT INTO user_schedules (user_id, title, schedule, visited_venues, is_active)
		 VALUES ($1, $2, $3, '[]'::jsonb, TRUE)
		 RETURNING schedule_id`,
		userID, title, payload).Scan(&id); err != nil {
		_ = tx.Rollback(ctx)
		span.RecordError(err)
		return uuid.Nil, fmt.Errorf("failed to insert schedule: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit schedule: %w", err)
	}
	return id, nil
}

func (r *PostgresScheduleRepo) GetActiveSchedule(ctx context.Context, userID uuid.UUID) (s *types.Schedule, err error) {
	ctx, span := otel.Tracer("ScheduleRepo").Start(ctx, "GetActiveSchedule", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_schedules.select_active", time.Now(), &err)

	s, err = scanSchedule(r.pgpool.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM user_schedules
		 WHERE user_id = $1 AND is_active
		 LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("active schedule: %w", types.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get active schedule: %w", err)
	}
	return s, nil
}

func (r *PostgresScheduleRepo) ListSchedules(ctx context.Context, userID uuid.UUID) (list []types.Schedule, err error) {
	ctx, span := otel.Tracer("ScheduleRepo").Start(ctx, "ListSchedules", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_schedules.list", time.Now(), &err)

	rows, err := r.pgpool.Query(ctx,
		`SELECT `+scheduleColumns+` FROM user_schedules
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	list = []types.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		list = append(list, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating schedules: %w", err)
	}
	return list, nil
}

func (r *PostgresScheduleRepo) UpdateSchedule(ctx context.Context, userID uuid.UUID, scheduleID *uuid.UUID, fn func(*types.Schedule) error) (err error) {
	ctx, span := otel.Tracer("ScheduleRepo").Start(ctx, "UpdateSchedule", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_schedules"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()
	defer database.ObserveQuery(ctx, r.metrics, "user_schedules.update", time.Now(), &err)

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var row pgx.Row
	if scheduleID != nil {
		span.SetAttributes(attribute.String("schedule.id", scheduleID.String()))
		row = tx.QueryRow(ctx,
			`SELECT `+scheduleColumns+` FROM user_schedules
			 WHERE schedule_id = $1 AND user_id = $2
			 FOR UPDATE`, *scheduleID, userID)
	} else {
		row = tx.QueryRow(ctx,
			`SELECT `+scheduleColumns+` FROM user_schedules
			 WHERE user_id = $1 AND is_active
			 LIMIT 1
			 FOR UPDATE`, userID)
	}

	s, err := scanSchedule(row)
	if err != nil {
		_ = tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("schedule: %w", types.ErrNotFound)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to load schedule: %w", err)
	}

	if err = fn(s); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	entriesJSON, err := json.Marshal(s.Entries)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	visitedJSON, err := json.Marshal(s.VisitedVenues)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to encode visited venues: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE user_schedules
		 SET schedule = $1, visited_venues = $2, updated_at = now()
		 WHERE schedule_id = $3`,
		entriesJSON, visitedJSON, s.ScheduleID); err != nil {
		_ = tx.Rollback(ctx)
		span.RecordError(err)
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schedule update: %w", err)
	}
	return nil
}
