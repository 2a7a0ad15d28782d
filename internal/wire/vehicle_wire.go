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

func wireVehicle(
	r chi.Router,
	vehicleHandler *adaptor.VehicleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Vehicle management is driver-only
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleDriver)))

		r.Post("/api/vehicles", vehicleHandler.Register)
		r.Get("/api/vehicles/my-vehicles", vehicleHandler.MyVehicles)
		r.Put("/api/vehicles/{id}", vehicleHandler.Update)
		r.Delete("/api/vehicles/{id}", vehicleHandler.Deactivate)
	})

	// Detail view: the owning driver or an admin
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleDriver), string(entity.RoleAdmin)))

		r.Get("/api/vehicles/{id}", vehicleHandler.Get)
	})
}
