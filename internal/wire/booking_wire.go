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

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Booking creation and cancellation are customer-only
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleCustomer)))

		r.Post("/api/bookings", bookingHandler.Create)
		r.Get("/api/bookings/my-bookings", bookingHandler.MyBookings)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.Cancel)
	})

	// Detail view: the owner, the ride's driver or an admin
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))

		r.Get("/api/bookings/{id}", bookingHandler.Get)
	})
}
