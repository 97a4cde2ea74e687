package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/internal/types"
)

// ObserveQuery records the duration of a repository operation and counts it as
// an error unless it succeeded or failed with a domain outcome (not found,
// conflict, unauthenticated, validation). It is meant to be deferred with
// a pointer to the caller's named error result. A nil m records nothing.
func ObserveQuery(ctx context.Context, m *metrics.AppMetrics, operation string, start time.Time, errp *error) {
	if m == nil {
		return
	}
	var err error
	if errp != nil {
		err = *errp
	}
	attrs := metric.WithAttributes(attribute.String("db.operation", operation))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil && !isDomainError(err) {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrConflict) ||
		errors.Is(err, types.ErrUnauthenticated) ||
		errors.Is(err, types.ErrValidation)
}
