package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/urban-guide/internal/api/auth"
	"github.com/FACorreiaa/urban-guide/internal/api/itinerary"
	"github.com/FACorreiaa/urban-guide/internal/api/profile"
	"github.com/FACorreiaa/urban-guide/internal/api/schedule"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.AuthHandler
	ItineraryHandler       *itinerary.Handler
	ProfileHandler         *profile.ProfileHandler
	ScheduleHandler        *schedule.ScheduleHandler
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter initializes and configures the API router.
// Server-wide middleware (logger, requestID, recoverer) is applied in main.go
// before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// public
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/token", cfg.AuthHandler.Login)
			r.Post("/auth/token/refresh", cfg.AuthHandler.RefreshToken)

			r.Post("/places", cfg.ItineraryHandler.BuildItinerary)
		})

		// authenticated
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/auth/protected", cfg.AuthHandler.Protected)

			r.Get("/places/details/{placeID}", cfg.ItineraryHandler.GetPlaceDetails)

			r.Route("/profile", func(r chi.Router) {
				r.Post("/", cfg.ProfileHandler.CreateProfile)
				r.Put("/", cfg.ProfileHandler.UpdateProfile)
				r.Get("/", cfg.ProfileHandler.GetProfile)
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Post("/", cfg.ScheduleHandler.CreateSchedule)
				r.Get("/active", cfg.ScheduleHandler.GetActiveSchedule)
				r.Get("/next-venue", cfg.ScheduleHandler.GetNextVenue)
				r.Post("/check-in", cfg.ScheduleHandler.CheckIn)
				r.Post("/check-out", cfg.ScheduleHandler.CheckOut)
				r.Get("/history", cfg.ScheduleHandler.History)
			})
		})
	})

	return r
}
