package wire

import (
	"wheelshare/internal/adaptor"
	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/pkg/middleware"
	"wheelshare/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRide(
	r chi.Router,
	rideHandler *adaptor.RideHandler,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Any authenticated user can search and inspect rides
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))

		r.Post("/api/rides/search", rideHandler.Search)
		r.Get("/api/rides/{id}", rideHandler.Get)
	})

	// Ride management is driver-only
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleDriver)))

		r.Post("/api/rides", rideHandler.Create)
		r.Get("/api/rides/my-rides", rideHandler.MyRides)
		r.Put("/api/rides/{id}/status", rideHandler.UpdateStatus)
		r.Get("/api/rides/{id}/bookings", bookingHandler.RideBookings)
	})
}
