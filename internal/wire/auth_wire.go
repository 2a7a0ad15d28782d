package wire

import (
	"wheelshare/internal/adaptor"
	"wheelshare/internal/data/repository"
	"wheelshare/pkg/middleware"
	"wheelshare/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/send-otp", authHandler.SendOTP)
	r.Post("/api/auth/verify-otp", authHandler.VerifyOTP)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, repo.Session, log))

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.Profile)
	})
}
