package adaptor

import (
	"wheelshare/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Ride         *RideHandler
	Booking      *BookingHandler
	Vehicle      *VehicleHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Ride:         NewRideHandler(service.Ride, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Vehicle:      NewVehicleHandler(service.Vehicle, log),
		Notification: NewNotificationHandler(service.Notification, log),
		Admin:        NewAdminHandler(service.Admin, log),
	}
}
