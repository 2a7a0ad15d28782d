package adaptor

import (
	"net/http"

	"wheelshare/internal/usecase"
	"wheelshare/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /api/admin/dashboard (admin only)
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// Vehicles handles GET /api/admin/vehicles (admin only)
func (h *AdminHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.GetAllVehicles(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// VerifyVehicle handles PUT /api/admin/vehicles/{id}/verify (admin only)
func (h *AdminHandler) VerifyVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid vehicle ID", nil)
		return
	}

	if err := h.service.VerifyVehicle(r.Context(), vehicleID); err != nil {
		handleServiceError(w, h.log, err, "verify vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle verified", nil)
}
