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

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		r.Get("/dashboard", adminHandler.Dashboard)
		r.Get("/vehicles", adminHandler.Vehicles)
		r.Put("/vehicles/{id}/verify", adminHandler.VerifyVehicle)
	})
}
