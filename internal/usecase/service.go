package usecase

import (
	"wheelshare/internal/data/repository"
	"wheelshare/internal/geocode"
	"wheelshare/pkg/database"
	"wheelshare/pkg/mailer"
	"wheelshare/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Ride         RideService
	Booking      BookingService
	Vehicle      VehicleService
	Notification NotificationService
	Admin        AdminService
}

func NewService(db database.PgxIface, repo *repository.Repository, geocoder geocode.Geocoder, mail mailer.Mailer, config *utils.Config, log *zap.Logger) *Service {
	notification := NewNotificationService(repo, log)

	return &Service{
		Auth:         NewAuthService(repo, mail, config, log),
		Ride:         NewRideService(repo, geocoder, log),
		Booking:      NewBookingService(db, repo, notification, log),
		Vehicle:      NewVehicleService(repo, log),
		Notification: notification,
		Admin:        NewAdminService(repo, log),
	}
}
