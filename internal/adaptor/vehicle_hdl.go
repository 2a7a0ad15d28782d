package adaptor

import (
	"encoding/json"
	"net/http"

	"wheelshare/internal/dto/request"
	"wheelshare/internal/usecase"
	"wheelshare/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

// Register handles POST /api/vehicles (driver only)
func (h *VehicleHandler) Register(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	vehicle, err := h.service.RegisterVehicle(r.Context(), driverID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register vehicle")
		return
	}

	utils.ResponseCreated(w, "success", vehicle)
}

// Get handles GET /api/vehicles/{id} (protected)
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	vehicleID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid vehicle ID", nil)
		return
	}

	vehicle, err := h.service.GetVehicle(r.Context(), userID, role, vehicleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// MyVehicles handles GET /api/vehicles/my-vehicles (driver only)
func (h *VehicleHandler) MyVehicles(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	vehicles, err := h.service.GetDriverVehicles(r.Context(), driverID)
	if err != nil {
		handleServiceError(w, h.log, err, "get driver vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// Update handles PUT /api/vehicles/{id} (driver only)
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	vehicleID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid vehicle ID", nil)
		return
	}

	var req request.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	vehicle, err := h.service.UpdateVehicle(r.Context(), driverID, vehicleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// Deactivate handles DELETE /api/vehicles/{id} (driver only)
func (h *VehicleHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	vehicleID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid vehicle ID", nil)
		return
	}

	if err := h.service.DeactivateVehicle(r.Context(), driverID, vehicleID); err != nil {
		handleServiceError(w, h.log, err, "deactivate vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle deactivated", nil)
}
