package wire

import (
	"net/http"

	"wheelshare/internal/adaptor"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/geocode"
	"wheelshare/internal/usecase"
	"wheelshare/pkg/database"
	"wheelshare/pkg/mailer"
	"wheelshare/pkg/middleware"
	"wheelshare/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring connects repositories, services, handlers and routes.
func Wiring(db database.PgxIface, repo *repository.Repository, geocoder geocode.Geocoder, mail mailer.Mailer, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(db, repo, geocoder, mail, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	// Feature routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireRide(r, handler.Ride, handler.Booking, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireVehicle(r, handler.Vehicle, repo, config, logger)
	wireNotification(r, handler.Notification, repo, config, logger)
	wireAdmin(r, handler.Admin, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", middleware.MetricsHandler())

	return r
}
