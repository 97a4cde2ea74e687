package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/urban-guide/app/db"
	"github.com/FACorreiaa/urban-guide/app/observability/metrics"
	"github.com/FACorreiaa/urban-guide/config"
	"github.com/FACorreiaa/urban-guide/internal/api/auth"
	"github.com/FACorreiaa/urban-guide/internal/api/googlemaps"
	"github.com/FACorreiaa/urban-guide/internal/api/itinerary"
	"github.com/FACorreiaa/urban-guide/internal/api/profile"
	"github.com/FACorreiaa/urban-guide/internal/api/schedule"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	AuthHandler      *auth.AuthHandler
	ItineraryHandler *itinerary.Handler
	ProfileHandler   *profile.ProfileHandler
	ScheduleHandler  *schedule.ScheduleHandler
}

// NewContainer opens the database pool and builds every repository, service
// and handler on top of it.
func NewContainer(cfg *config.Config, m *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	c := New(cfg, pool, m, logger)
	c.Pool = pool
	return c, nil
}

// New wires the handlers over an existing querier.
func New(cfg *config.Config, q database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *Container {
	authRepo := auth.NewAuthRepoFactory(q, m, logger)
	authService := auth.NewAuthService(authRepo, cfg.JWT, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	places := googlemaps.NewClient(cfg.Google, m, logger)
	itineraryService := itinerary.NewServiceImpl(places, cfg.Itinerary, m, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	profileRepo := profile.NewPostgresProfileRepo(q, m, logger)
	profileService := profile.NewProfileService(profileRepo, logger)
	profileHandler := profile.NewProfileHandler(profileService, logger)

	scheduleRepo := schedule.NewPostgresScheduleRepo(q, m, logger)
	scheduleService := schedule.NewScheduleService(scheduleRepo, logger)
	scheduleHandler := schedule.NewScheduleHandler(scheduleService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		AuthHandler:      authHandler,
		ItineraryHandler: itineraryHandler,
		ProfileHandler:   profileHandler,
		ScheduleHandler:  scheduleHandler,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
