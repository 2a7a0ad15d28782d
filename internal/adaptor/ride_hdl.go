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

type RideHandler struct {
	service usecase.RideService
	log     *zap.Logger
}

func NewRideHandler(service usecase.RideService, log *zap.Logger) *RideHandler {
	return &RideHandler{
		service: service,
		log:     log.With(zap.String("handler", "ride")),
	}
}

// Search handles POST /api/rides/search (protected)
func (h *RideHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req request.SearchRidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	results, err := h.service.SearchRides(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "search rides")
		return
	}

	utils.ResponseSuccess(w, "success", results)
}

// Create handles POST /api/rides (driver only)
func (h *RideHandler) Create(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ride, err := h.service.CreateRide(r.Context(), driverID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create ride")
		return
	}

	utils.ResponseCreated(w, "success", ride)
}

// Get handles GET /api/rides/{id} (protected)
func (h *RideHandler) Get(w http.ResponseWriter, r *http.Request) {
	rideID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ride ID", nil)
		return
	}

	ride, err := h.service.GetRide(r.Context(), rideID)
	if err != nil {
		handleServiceError(w, h.log, err, "get ride")
		return
	}

	utils.ResponseSuccess(w, "success", ride)
}

// MyRides handles GET /api/rides/my-rides (driver only)
func (h *RideHandler) MyRides(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	rides, err := h.service.GetDriverRides(r.Context(), driverID)
	if err != nil {
		handleServiceError(w, h.log, err, "get driver rides")
		return
	}

	utils.ResponseSuccess(w, "success", rides)
}

// UpdateStatus handles PUT /api/rides/{id}/status (driver only)
func (h *RideHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	rideID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ride ID", nil)
		return
	}

	var req request.UpdateRideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateRideStatus(r.Context(), driverID, rideID, &req); err != nil {
		handleServiceError(w, h.log, err, "update ride status")
		return
	}

	utils.ResponseSuccess(w, "Ride status updated", nil)
}
